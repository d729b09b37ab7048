// Package rewrite derives analysis friendly copies of the stores: compound
// fields are split into their parts and dates are normalized. The stores
// themselves are never modified.
package rewrite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"ufcstats/internal/records"
	"ufcstats/internal/store"
	"ufcstats/lib/textutil"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("ufcstats.internal.rewrite")

const maxJudges = 3

var (
	EventColumns       = []string{"EVENT_NUMBER", "LOCATION_CITY", "LOCATION_COUNTRY"}
	FightColumns       = []string{"EVENT_NUMBER", "MAIN_FIGHTER_1", "MAIN_FIGHTER_2"}
	FightResultColumns = func() []string {
		cols := []string{"FIGHTER_1", "FIGHTER_2", "FIGHTER_1_RESULT", "FIGHTER_2_RESULT"}
		for i := 1; i <= maxJudges; i++ {
			cols = append(cols, fmt.Sprintf("JUDGE_%d", i), fmt.Sprintf("JUDGE_%d_SCORE", i))
		}
		return cols
	}()
	FightStatColumns = func() []string {
		var cols []string
		for _, name := range attemptFields {
			cols = append(cols, name+"_SUCCEEDED", name+"_ATTEMPTED")
		}
		return cols
	}()
)

var attemptFields = []string{"SIG_STR", "TOTAL_STR", "HEAD", "BODY", "LEG", "DISTANCE", "CLINCH", "GROUND"}

// Event returns the stored values of `e` with DATE reformatted to
// mm-dd-yyyy, followed by EventColumns.
func Event(e records.Event) ([]string, error) {
	if e.Date != "" {
		date, err := textutil.ReformatDate(e.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "event %q", e.Name)
		}
		e.Date = date
	}
	city, country := textutil.SplitLocation(e.Location)
	return append(e.Values(), textutil.ExtractEventNumber(e.Name), city, country), nil
}

// Fight returns the stored values of `f` followed by FightColumns.
func Fight(f records.Fight) []string {
	a, b := textutil.SplitPair(f.Bout, records.BoutSeparator)
	return append(f.Values(), textutil.ExtractEventNumber(f.Event), a, b)
}

// FightResult returns the stored values of `r` followed by
// FightResultColumns. Judges past the third are dropped, missing ones are
// left blank.
func FightResult(r records.FightResult) []string {
	a, b := textutil.SplitPair(r.Bout, records.BoutSeparator)
	resultA, resultB := textutil.SplitPair(r.Outcome, records.OutcomeSeparator)
	values := append(
		r.Values(),
		strings.TrimSpace(a), strings.TrimSpace(b),
		strings.TrimSpace(resultA), strings.TrimSpace(resultB),
	)

	judges := textutil.ExtractJudges(r.Details)
	for i := 0; i < maxJudges; i++ {
		if i < len(judges) {
			values = append(values, judges[i].Judge, judges[i].Score)
			continue
		}
		values = append(values, "", "")
	}
	return values
}

// FightStat returns the stored values of `s` with the percent signs
// removed, followed by FightStatColumns.
func FightStat(s records.FightStat) []string {
	s.SigStrPct = textutil.StripPercent(s.SigStrPct)
	s.TDPct = textutil.StripPercent(s.TDPct)
	values := s.Values()
	for _, field := range []string{s.SigStr, s.TotalStr, s.Head, s.Body, s.Leg, s.Distance, s.Clinch, s.Ground} {
		succeeded, attempted := textutil.SplitAttempts(field)
		values = append(values, succeeded, attempted)
	}
	return values
}

type Output struct {
	Path string
	Rows int
}

func identity(values []string) []string {
	return values
}

func rewriteTable[T any](
	ctx context.Context,
	table *store.Table[T],
	outDir string,
	extra []string,
	rewrite func(T) ([]string, error),
) (Output, error) {
	ctx, span := tracer.Start(ctx, "rewriteTable")
	defer span.End()
	span.SetAttributes(attribute.String("source", table.Path))

	rows, err := table.Read(ctx)
	if err != nil {
		return Output{}, err
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i], err = rewrite(row)
		if err != nil {
			return Output{}, errors.Wrapf(err, "%s row %d", table.Path, i)
		}
	}

	columns := append(append([]string{}, table.Columns...), extra...)
	path := filepath.Join(outDir, filepath.Base(table.Path))
	dest := store.NewTable(path, columns, identity, nil)
	err = dest.Write(ctx, out)
	if err != nil {
		return Output{}, err
	}
	return Output{Path: path, Rows: len(out)}, nil
}

func infallible[T any](fn func(T) []string) func(T) ([]string, error) {
	return func(row T) ([]string, error) {
		return fn(row), nil
	}
}

// Rewrite writes the rewritten events, fights, fight results and fight
// stats to `outDir`, under the same file names as their stores.
func Rewrite(ctx context.Context, stores store.Stores, outDir string) ([]Output, error) {
	var outputs []Output
	for _, fn := range []func() (Output, error){
		func() (Output, error) { return rewriteTable(ctx, stores.Events, outDir, EventColumns, Event) },
		func() (Output, error) { return rewriteTable(ctx, stores.Fights, outDir, FightColumns, infallible(Fight)) },
		func() (Output, error) {
			return rewriteTable(ctx, stores.FightResults, outDir, FightResultColumns, infallible(FightResult))
		},
		func() (Output, error) {
			return rewriteTable(ctx, stores.FightStats, outDir, FightStatColumns, infallible(FightStat))
		},
	} {
		output, err := fn()
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output)
	}
	return outputs, nil
}
