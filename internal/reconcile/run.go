// Package reconcile brings the persisted stores up to date with the site,
// fetching only what the stores are missing.
package reconcile

import (
	"context"
	"log/slog"
	"ufcstats/internal/records"
	"ufcstats/internal/store"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ufcstats.internal.reconcile")

// Run is the state of one scrape. Stores are read at the start of each phase
// and written at its end, nothing is written when a phase finds nothing to do
// or fails part way.
type Run struct {
	ID     string
	Source Source
	Stores store.Stores
}

func NewRun(source Source, stores store.Stores) *Run {
	return &Run{
		ID:     uuid.NewString(),
		Source: source,
		Stores: stores,
	}
}

type EventReport struct {
	Delta        EventDelta
	Fights       int
	FightResults int
	FightStats   int
}

type FighterReport struct {
	Listed int
	New    []records.FighterDetail
}

func fail(span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	return err
}

// PendingEvents fetches the event listing and returns what the next event
// phase would fetch, without fetching it.
func (r *Run) PendingEvents(ctx context.Context) (EventDelta, error) {
	ctx, span := tracer.Start(ctx, "PendingEvents", trace.WithAttributes(
		attribute.String("run_id", r.ID),
	))
	defer span.End()

	persisted, err := r.Stores.Events.Read(ctx)
	if err != nil {
		return EventDelta{}, fail(span, err, "failed to read events")
	}
	fights, err := r.Stores.Fights.Read(ctx)
	if err != nil {
		return EventDelta{}, fail(span, err, "failed to read fights")
	}
	fresh, err := r.Source.EventListing(ctx)
	if err != nil {
		return EventDelta{}, fail(span, err, "failed to fetch event listing")
	}
	return ComputeEventDelta(fresh, persisted, fights), nil
}

// Events fetches the fights of every new or incomplete event. Rows already
// persisted for those events are replaced, the freshly fetched rows come
// first in every store.
func (r *Run) Events(ctx context.Context) (EventReport, error) {
	ctx, span := tracer.Start(ctx, "Events", trace.WithAttributes(
		attribute.String("run_id", r.ID),
	))
	defer span.End()

	persistedEvents, err := r.Stores.Events.Read(ctx)
	if err != nil {
		return EventReport{}, fail(span, err, "failed to read events")
	}
	persistedFights, err := r.Stores.Fights.Read(ctx)
	if err != nil {
		return EventReport{}, fail(span, err, "failed to read fights")
	}
	persistedResults, err := r.Stores.FightResults.Read(ctx)
	if err != nil {
		return EventReport{}, fail(span, err, "failed to read fight results")
	}
	persistedStats, err := r.Stores.FightStats.Read(ctx)
	if err != nil {
		return EventReport{}, fail(span, err, "failed to read fight stats")
	}

	fresh, err := r.Source.EventListing(ctx)
	if err != nil {
		return EventReport{}, fail(span, err, "failed to fetch event listing")
	}

	delta := ComputeEventDelta(fresh, persistedEvents, persistedFights)
	report := EventReport{Delta: delta}
	span.SetAttributes(
		attribute.Int("new_events", len(delta.New)),
		attribute.Int("incomplete_events", len(delta.Incomplete)),
	)
	if delta.Empty() {
		slog.InfoContext(ctx, "all available events have been parsed", "run_id", r.ID)
		return report, nil
	}
	for _, e := range delta.New {
		slog.InfoContext(ctx, "new event", "run_id", r.ID, "event", e.Name)
	}
	for _, e := range delta.Incomplete {
		slog.InfoContext(ctx, "incomplete event", "run_id", r.ID, "event", e.Name)
	}

	var fights []records.Fight
	for _, event := range delta.Targets() {
		card, err := r.Source.EventCard(ctx, event)
		if err != nil {
			return EventReport{}, fail(span, errors.Wrapf(err, "event %q", event.Name), "failed to fetch event")
		}
		fights = append(fights, card...)
	}

	var results []records.FightResult
	var stats []records.FightStat
	for _, fight := range fights {
		result, fightStats, err := r.Source.Fight(ctx, fight)
		if err != nil {
			return EventReport{}, fail(span, errors.Wrapf(err, "bout %q", fight.Bout), "failed to fetch fight")
		}
		slog.DebugContext(ctx, "fetched fight", "run_id", r.ID, "bout", fight.Bout, "rounds", len(fightStats))
		results = append(results, result)
		stats = append(stats, fightStats...)
	}

	targets := delta.names()
	stats = append(stats, withoutEvents(persistedStats, targets, func(s records.FightStat) string { return s.Event })...)
	results = mergeByKey(
		results,
		withoutEvents(persistedResults, targets, func(res records.FightResult) string { return res.Event }),
		func(res records.FightResult) string { return res.URL },
	)
	fights = mergeByKey(
		fights,
		withoutEvents(persistedFights, targets, func(f records.Fight) string { return f.Event }),
		func(f records.Fight) string { return f.URL },
	)
	events := mergeByKey(fresh, persistedEvents, func(e records.Event) string { return e.Name })

	// events go last so that a failure in between leaves the affected events
	// incomplete, and the next run picks them up again.
	err = r.Stores.FightStats.Write(ctx, stats)
	if err != nil {
		return EventReport{}, fail(span, err, "failed to write fight stats")
	}
	err = r.Stores.FightResults.Write(ctx, results)
	if err != nil {
		return EventReport{}, fail(span, err, "failed to write fight results")
	}
	err = r.Stores.Fights.Write(ctx, fights)
	if err != nil {
		return EventReport{}, fail(span, err, "failed to write fights")
	}
	err = r.Stores.Events.Write(ctx, events)
	if err != nil {
		return EventReport{}, fail(span, err, "failed to write events")
	}

	report.Fights = len(fights)
	report.FightResults = len(results)
	report.FightStats = len(stats)
	slog.InfoContext(
		ctx, "events reconciled",
		"run_id", r.ID,
		"events", len(events),
		"fights", report.Fights,
		"fight_results", report.FightResults,
		"fight_stats", report.FightStats,
	)
	return report, nil
}

// Fighters fetches the tale of the tape of every listed fighter that was
// never persisted. Fighters already persisted are not fetched again.
func (r *Run) Fighters(ctx context.Context) (FighterReport, error) {
	ctx, span := tracer.Start(ctx, "Fighters", trace.WithAttributes(
		attribute.String("run_id", r.ID),
	))
	defer span.End()

	persistedDetails, err := r.Stores.FighterDetails.Read(ctx)
	if err != nil {
		return FighterReport{}, fail(span, err, "failed to read fighter details")
	}
	persistedTott, err := r.Stores.FighterTott.Read(ctx)
	if err != nil {
		return FighterReport{}, fail(span, err, "failed to read fighter tott")
	}

	fresh, err := r.Source.FighterListing(ctx)
	if err != nil {
		return FighterReport{}, fail(span, err, "failed to fetch fighter listing")
	}
	unseen := ComputeFighterDelta(fresh, persistedDetails)
	report := FighterReport{Listed: len(fresh), New: unseen}
	span.SetAttributes(attribute.Int("new_fighters", len(unseen)))
	if len(unseen) == 0 {
		slog.InfoContext(ctx, "all available fighters have been parsed", "run_id", r.ID)
		return report, nil
	}

	tott := make([]records.FighterTott, 0, len(unseen))
	for _, fighter := range unseen {
		t, err := r.Source.FighterTott(ctx, fighter)
		if err != nil {
			return FighterReport{}, fail(span, errors.Wrapf(err, "fighter %s", fighter.URL), "failed to fetch fighter")
		}
		tott = append(tott, t)
	}

	tott = appendByKey(persistedTott, tott, func(t records.FighterTott) string { return t.URL })
	details := mergeByKey(fresh, persistedDetails, func(d records.FighterDetail) string { return d.URL })

	err = r.Stores.FighterTott.Write(ctx, tott)
	if err != nil {
		return FighterReport{}, fail(span, err, "failed to write fighter tott")
	}
	err = r.Stores.FighterDetails.Write(ctx, details)
	if err != nil {
		return FighterReport{}, fail(span, err, "failed to write fighter details")
	}

	slog.InfoContext(ctx, "fighters reconciled", "run_id", r.ID, "new_fighters", len(unseen), "fighters", len(details))
	return report, nil
}
