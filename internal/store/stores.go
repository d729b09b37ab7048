package store

import (
	"context"
	"ufcstats/internal/config"
	"ufcstats/internal/records"
)

// Stores is the set of tables a run reads at its start and writes back at the
// end of each phase.
type Stores struct {
	Events         *Table[records.Event]
	Fights         *Table[records.Fight]
	FightResults   *Table[records.FightResult]
	FightStats     *Table[records.FightStat]
	FighterDetails *Table[records.FighterDetail]
	FighterTott    *Table[records.FighterTott]
}

func FromConfig(cfg config.Config) Stores {
	return Stores{
		Events: NewTable(
			cfg.EventDetailsFile, cfg.EventDetailsColumns,
			records.Event.Values, records.EventFromValues,
		),
		Fights: NewTable(
			cfg.FightDetailsFile, cfg.FightDetailsColumns,
			records.Fight.Values, records.FightFromValues,
		),
		FightResults: NewTable(
			cfg.FightResultsFile, cfg.FightResultsColumns,
			records.FightResult.Values, records.FightResultFromValues,
		),
		FightStats: NewTable(
			cfg.FightStatsFile, cfg.FightStatsColumns,
			records.FightStat.Values, records.FightStatFromValues,
		),
		FighterDetails: NewTable(
			cfg.FighterDetailsFile, cfg.FighterDetailsColumns,
			records.FighterDetail.Values, records.FighterDetailFromValues,
		),
		FighterTott: NewTable(
			cfg.FighterTottFile, cfg.FighterTottColumns,
			records.FighterTott.Values, records.FighterTottFromValues,
		),
	}
}

// Counts is the number of rows in each table.
type Counts struct {
	Events         int
	Fights         int
	FightResults   int
	FightStats     int
	FighterDetails int
	FighterTott    int
}

func count[T any](ctx context.Context, t *Table[T], out *int) error {
	rows, err := t.Read(ctx)
	if err != nil {
		return err
	}
	*out = len(rows)
	return nil
}

func (s Stores) Count(ctx context.Context) (Counts, error) {
	var c Counts
	for _, fn := range []func() error{
		func() error { return count(ctx, s.Events, &c.Events) },
		func() error { return count(ctx, s.Fights, &c.Fights) },
		func() error { return count(ctx, s.FightResults, &c.FightResults) },
		func() error { return count(ctx, s.FightStats, &c.FightStats) },
		func() error { return count(ctx, s.FighterDetails, &c.FighterDetails) },
		func() error { return count(ctx, s.FighterTott, &c.FighterTott) },
	} {
		err := fn()
		if err != nil {
			return Counts{}, err
		}
	}
	return c, nil
}
