package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"fitmetrics/internal/app"
	"fitmetrics/internal/config"
	"fitmetrics/internal/domain"
	"fitmetrics/internal/importer"
	"fitmetrics/internal/output"
)

var flagImportUser string

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import weight entries from a Week,Date,Weight,Notes CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.Driver == config.DriverMemory {
			return errors.New("import needs a persistent database; set database.driver")
		}
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		st, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		svc := buildServices(cfg, st)
		res, err := runImport(cmd.Context(), svc.Weight, st, flagImportUser, string(raw))
		if err != nil {
			return err
		}
		return printImport(cmd.OutOrStdout(), res)
	},
}

func init() {
	importCmd.Flags().StringVar(&flagImportUser, "user", "", "Username that owns the imported entries")
	rootCmd.AddCommand(importCmd)
}

func runImport(ctx context.Context, weights *app.WeightService, users domain.UserRepository, username, raw string) (*importer.Result, error) {
	u, err := lookupUser(ctx, users, username)
	if err != nil {
		return nil, err
	}
	return weights.Import(ctx, u.ID, raw)
}

func printImport(w io.Writer, res *importer.Result) error {
	if flagJSON {
		return output.JSON(w, res)
	}

	fmt.Fprintf(w, "%s %s\n", output.StyleHeader.Render("Batch"), res.BatchID)
	fmt.Fprintf(w, "imported %s  skipped %s  failed %s\n",
		output.StyleSuccess.Render(strconv.Itoa(res.Imported)),
		output.StyleError.Render(strconv.Itoa(res.Skipped)),
		output.StyleError.Render(strconv.Itoa(res.Failed)),
	)
	if len(res.Errors) == 0 {
		return nil
	}

	tbl := output.NewTable("Row", "Reason", "Detail")
	for _, e := range res.Errors {
		tbl.AddRow(strconv.Itoa(e.Row), string(e.Reason), e.Detail)
	}
	fmt.Fprintln(w)
	return tbl.Fprint(w)
}
