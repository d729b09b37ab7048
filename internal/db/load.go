package db

import (
	"context"
	"log/slog"
	"ufcstats/internal/store"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("ufcstats.internal.db")

type TableLoad struct {
	Table    string
	Rows     int
	Inserted int
}

func loadTable[T any](
	ctx context.Context,
	makeTx MakeTx,
	name string,
	table *store.Table[T],
	insert func(*Queries, context.Context, T) (bool, error),
) (TableLoad, error) {
	ctx, span := tracer.Start(ctx, "loadTable")
	defer span.End()
	span.SetAttributes(attribute.String("table", name))

	rows, err := table.Read(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read store")
		return TableLoad{}, err
	}

	tx, discard, commit, err := makeTx(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to begin transaction")
		return TableLoad{}, errors.Wrapf(err, "begin %s", name)
	}
	defer discard()

	result := TableLoad{Table: name, Rows: len(rows)}
	for i, row := range rows {
		inserted, err := insert(tx, ctx, row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to insert row")
			return TableLoad{}, errors.Wrapf(err, "insert %s row %d", name, i)
		}
		if inserted {
			result.Inserted++
		}
	}
	err = commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to commit")
		return TableLoad{}, errors.Wrapf(err, "commit %s", name)
	}

	span.SetAttributes(attribute.Int("inserted", result.Inserted))
	slog.InfoContext(ctx, "loaded table", "table", name, "rows", result.Rows, "inserted", result.Inserted)
	return result, nil
}

// Load inserts every row of the stores that is not in the database yet, one
// transaction per table, parents before children. Rows whose key already
// exists are left as they are.
func Load(ctx context.Context, makeTx MakeTx, stores store.Stores) ([]TableLoad, error) {
	loads := []func() (TableLoad, error){
		func() (TableLoad, error) {
			return loadTable(ctx, makeTx, "event_details", stores.Events, (*Queries).InsertEvent)
		},
		func() (TableLoad, error) {
			return loadTable(ctx, makeTx, "fight_details", stores.Fights, (*Queries).InsertFight)
		},
		func() (TableLoad, error) {
			return loadTable(ctx, makeTx, "fight_results", stores.FightResults, (*Queries).InsertFightResult)
		},
		func() (TableLoad, error) {
			return loadTable(ctx, makeTx, "fight_stats", stores.FightStats, (*Queries).InsertFightStat)
		},
		func() (TableLoad, error) {
			return loadTable(ctx, makeTx, "fighter_details", stores.FighterDetails, (*Queries).InsertFighterDetail)
		},
		func() (TableLoad, error) {
			return loadTable(ctx, makeTx, "fighter_stats", stores.FighterTott, (*Queries).InsertFighterTott)
		},
	}

	results := make([]TableLoad, 0, len(loads))
	for _, load := range loads {
		result, err := load()
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
