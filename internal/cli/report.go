package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	adapthttp "fitmetrics/internal/adapter/http"
	"fitmetrics/internal/domain"
	"fitmetrics/internal/metrics"
	"fitmetrics/internal/output"
)

var (
	flagReportUser string
	flagReportKind string
	flagReportUnit string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print reports from stored data",
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Per-week weight or step summaries, newest week first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		svc := buildServices(cfg, st)
		u, err := lookupUser(cmd.Context(), st, flagReportUser)
		if err != nil {
			return err
		}
		return weeklyReport(cmd.Context(), cmd.OutOrStdout(), svc, u.ID, flagReportKind, flagReportUnit)
	},
}

func init() {
	weeklyCmd.Flags().StringVar(&flagReportUser, "user", "", "Username to report on")
	weeklyCmd.Flags().StringVar(&flagReportKind, "kind", "weight", "Metric: weight or steps")
	weeklyCmd.Flags().StringVar(&flagReportUnit, "unit", domain.UnitKg, "Weight unit: kg or lb")
	reportCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(reportCmd)
}

func weeklyReport(ctx context.Context, w io.Writer, svc adapthttp.Services, userID int64, kind, unit string) error {
	switch kind {
	case "weight":
		weeks, err := svc.Weight.Weekly(ctx, userID, unit)
		if err != nil {
			return err
		}
		if flagJSON {
			return output.JSON(w, weeks)
		}
		return weightTable(weeks, unit).Fprint(w)

	case "steps":
		weeks, err := svc.Steps.Weekly(ctx, userID)
		if err != nil {
			return err
		}
		if flagJSON {
			return output.JSON(w, weeks)
		}
		tbl := output.NewTable("Week", "Days", "Total", "Avg", "Goals met")
		for _, wk := range weeks {
			tbl.AddRow(
				strconv.Itoa(wk.Week),
				strconv.Itoa(wk.DaysTracked),
				fmt.Sprintf("%.0f", wk.Total),
				fmt.Sprintf("%.0f", wk.Avg),
				fmt.Sprintf("%d/%d", wk.GoalsMet, wk.DaysTracked),
			)
		}
		return tbl.Fprint(w)

	default:
		return fmt.Errorf("unknown --kind %q (want weight or steps)", kind)
	}
}

func weightTable(weeks []metrics.WeekBucket, unit string) *output.Table {
	tbl := output.NewTable("Week", "Entries", "Avg "+unit, "Min", "Max", "Change")
	for _, wk := range weeks {
		change := "-"
		if wk.ChangeFromPrevious != nil {
			change = output.Signed(*wk.ChangeFromPrevious, true, "%.1f")
		}
		tbl.AddRow(
			strconv.Itoa(wk.Week),
			strconv.Itoa(wk.Count),
			fmt.Sprintf("%.1f", wk.Avg),
			fmt.Sprintf("%.1f", wk.Min),
			fmt.Sprintf("%.1f", wk.Max),
			change,
		)
	}
	return tbl
}
