// Package importer turns an uploaded CSV payload into weight entries.
//
// Every row is validated on its own and valid rows are written one at a
// time, so a bad row never takes its siblings down with it. The batch as a
// whole only fails for structural problems: a wrong header or too many rows.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fitmetrics/internal/domain"
)

var (
	ErrInvalidHeader = errors.New("invalid header: expected Week,Date,Weight,Notes")
	ErrTooManyRows   = errors.New("too many rows")
)

// Reason classifies why a row was not imported.
type Reason string

const (
	MalformedRow  Reason = "MalformedRow"
	InvalidDate   Reason = "InvalidDate"
	InvalidWeight Reason = "InvalidWeight"
	InvalidWeek   Reason = "InvalidWeek"
	StorageError  Reason = "StorageError"
)

// Defaults applied by New for zero option values.
const (
	DefaultMaxRows = 5000
	DefaultWorkers = 4
)

var header = []string{"week", "date", "weight", "notes"}

var dateLayouts = []string{domain.DayLayout, "2006/01/02", time.RFC3339}

// WeightWriter persists a single weight entry.
type WeightWriter interface {
	AddWeight(ctx context.Context, userID int64, e domain.WeightEntry) (int64, error)
}

// PlanLocator derives the plan week of a date for rows that leave Week
// blank.
type PlanLocator interface {
	WeekFor(ctx context.Context, userID int64, date time.Time) (int, error)
}

// Options tune an Importer.
type Options struct {
	// MaxRows caps the number of non-blank data rows in one upload.
	MaxRows int
	// Workers bounds concurrent writes.
	Workers int
	// Unit is the unit of the Weight column ("kg" or "lb").
	Unit string
}

// RowError reports a single rejected or failed row. Row is the 1-based line
// number after the header.
type RowError struct {
	Row    int    `json:"row"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (e RowError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Reason, e.Detail)
}

// Result summarises one import batch. Skipped counts rows rejected during
// parsing or validation, Failed counts valid rows the store refused.
type Result struct {
	BatchID  string     `json:"batchId"`
	Imported int        `json:"importedCount"`
	Skipped  int        `json:"skippedCount"`
	Failed   int        `json:"failedCount"`
	Errors   []RowError `json:"errors"`
}

// Importer validates CSV weight uploads and writes the valid rows.
type Importer struct {
	store WeightWriter
	plans PlanLocator
	opts  Options
}

// New returns an Importer writing to store. plans may be nil, in which case
// rows without a Week are rejected.
func New(store WeightWriter, plans PlanLocator, opts Options) *Importer {
	if opts.MaxRows <= 0 {
		opts.MaxRows = DefaultMaxRows
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if !domain.ValidUnit(opts.Unit) {
		opts.Unit = domain.UnitKg
	}
	return &Importer{store: store, plans: plans, opts: opts}
}

type row struct {
	line   int
	fields []string
}

type outcome struct {
	written bool
	err     *RowError
}

// ImportWeights parses raw and writes every valid row for userID. Row level
// problems are reported in the Result; an error is returned only when the
// payload as a whole is unusable, in which case nothing is written.
func (im *Importer) ImportWeights(ctx context.Context, userID int64, raw string) (*Result, error) {
	rows, err := im.parse(raw)
	if err != nil {
		return nil, err
	}

	res := &Result{BatchID: uuid.NewString(), Errors: []RowError{}}

	var valid []int
	entries := make([]domain.WeightEntry, len(rows))
	outcomes := make([]outcome, len(rows))
	for i, r := range rows {
		e, rerr := im.validate(ctx, userID, r)
		if rerr != nil {
			outcomes[i].err = rerr
			continue
		}
		entries[i] = e
		valid = append(valid, i)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.opts.Workers)
	for _, i := range valid {
		g.Go(func() error {
			if _, err := im.store.AddWeight(gctx, userID, entries[i]); err != nil {
				outcomes[i].err = &RowError{Row: rows[i].line, Reason: StorageError, Detail: err.Error()}
				return nil
			}
			outcomes[i].written = true
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		switch {
		case o.written:
			res.Imported++
		case o.err.Reason == StorageError:
			res.Failed++
			res.Errors = append(res.Errors, *o.err)
		default:
			res.Skipped++
			res.Errors = append(res.Errors, *o.err)
		}
	}
	sort.SliceStable(res.Errors, func(i, j int) bool { return res.Errors[i].Row < res.Errors[j].Row })

	log.Printf("import batch %s: imported=%d skipped=%d failed=%d", res.BatchID, res.Imported, res.Skipped, res.Failed)
	return res, nil
}

// parse checks the header and splits the remaining non-blank lines into
// fields, keeping each line's position.
func (im *Importer) parse(raw string) ([]row, error) {
	lines := strings.Split(strings.TrimPrefix(raw, "\ufeff"), "\n")
	if !validHeader(lines[0]) {
		return nil, ErrInvalidHeader
	}

	var rows []row
	for n, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, row{line: n + 1, fields: fields})
	}
	if len(rows) > im.opts.MaxRows {
		return nil, fmt.Errorf("%w: %d rows, limit is %d", ErrTooManyRows, len(rows), im.opts.MaxRows)
	}
	return rows, nil
}

func validHeader(line string) bool {
	cols := strings.Split(strings.TrimSpace(strings.TrimSuffix(line, "\r")), ",")
	if len(cols) != len(header) {
		return false
	}
	for i, c := range cols {
		if !strings.EqualFold(strings.TrimSpace(c), header[i]) {
			return false
		}
	}
	return true
}

// decimalNumber is a plain base-10 number. ParseFloat alone would also take
// hex floats, exponents, underscores and the NaN/Inf spellings.
var decimalNumber = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)$`)

// validate runs the row checks in order and stops at the first failure.
func (im *Importer) validate(ctx context.Context, userID int64, r row) (domain.WeightEntry, *RowError) {
	reject := func(reason Reason, format string, args ...any) *RowError {
		return &RowError{Row: r.line, Reason: reason, Detail: fmt.Sprintf(format, args...)}
	}

	if len(r.fields) != len(header) {
		return domain.WeightEntry{}, reject(MalformedRow, "expected %d fields, got %d", len(header), len(r.fields))
	}
	weekStr, dateStr, weightStr, notes := r.fields[0], r.fields[1], r.fields[2], r.fields[3]

	date, ok := parseDate(dateStr)
	if !ok {
		return domain.WeightEntry{}, reject(InvalidDate, "cannot parse %q", dateStr)
	}

	if !decimalNumber.MatchString(weightStr) {
		return domain.WeightEntry{}, reject(InvalidWeight, "cannot parse %q", weightStr)
	}
	w, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		return domain.WeightEntry{}, reject(InvalidWeight, "cannot parse %q", weightStr)
	}
	if kg := domain.ConvertWeight(w, im.opts.Unit, domain.UnitKg); kg < domain.MinWeightKg || kg > domain.MaxWeightKg {
		return domain.WeightEntry{}, reject(InvalidWeight, "%g %s is outside %g-%g kg", w, im.opts.Unit, domain.MinWeightKg, domain.MaxWeightKg)
	}

	var week int
	if weekStr == "" {
		if im.plans == nil {
			return domain.WeightEntry{}, reject(InvalidWeek, "week is blank and there is no plan to derive it from")
		}
		week, err = im.plans.WeekFor(ctx, userID, date)
		if err != nil {
			return domain.WeightEntry{}, reject(InvalidWeek, "%v", err)
		}
	} else {
		week, err = strconv.Atoi(weekStr)
		if err != nil || week < 1 {
			return domain.WeightEntry{}, reject(InvalidWeek, "%q is not a positive integer", weekStr)
		}
	}

	return domain.WeightEntry{
		UserID: userID,
		Date:   date,
		Week:   week,
		Weight: w,
		Unit:   im.opts.Unit,
		Notes:  notes,
	}, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Day(t), true
		}
	}
	return time.Time{}, false
}
