package db

import (
	"context"
	"path/filepath"
	"testing"
	"ufcstats/internal/config"
	"ufcstats/internal/records"
	"ufcstats/internal/store"

	"github.com/stretchr/testify/require"
)

func testStores(t testing.TB) store.Stores {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.EventDetailsFile = filepath.Join(dir, "events.csv")
	cfg.FightDetailsFile = filepath.Join(dir, "fights.csv")
	cfg.FightResultsFile = filepath.Join(dir, "results.csv")
	cfg.FightStatsFile = filepath.Join(dir, "stats.csv")
	cfg.FighterDetailsFile = filepath.Join(dir, "fighters.csv")
	cfg.FighterTottFile = filepath.Join(dir, "tott.csv")
	return store.FromConfig(cfg)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	database, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer database.Close()

	stores := testStores(t)
	require.NoError(t, stores.Events.Write(ctx, []records.Event{
		{Name: "UFC 2: No Way Out", URL: "e/2", Date: "March 11, 1994", Location: "Denver, Colorado, USA"},
		{Name: "UFC 1: The Beginning", URL: "e/1", Date: "November 12, 1993", Location: "Denver, Colorado, USA"},
	}))
	require.NoError(t, stores.Fights.Write(ctx, []records.Fight{
		{Event: "UFC 1: The Beginning", Bout: "Royce Gracie vs. Gerard Gordeau", URL: "f/1"},
	}))
	require.NoError(t, stores.FightResults.Write(ctx, []records.FightResult{
		{Event: "UFC 1: The Beginning", Bout: "Royce Gracie vs. Gerard Gordeau", Outcome: "W/L", Round: "1", URL: "f/1"},
	}))
	require.NoError(t, stores.FightStats.Write(ctx, []records.FightStat{
		{Event: "UFC 1: The Beginning", Bout: "Royce Gracie vs. Gerard Gordeau", Round: "Round 1", Fighter: "Royce Gracie", KD: "0"},
		{Event: "UFC 1: The Beginning", Bout: "Royce Gracie vs. Gerard Gordeau", Round: "Round 1", Fighter: "Gerard Gordeau", KD: "0"},
	}))
	require.NoError(t, stores.FighterDetails.Write(ctx, []records.FighterDetail{
		{First: "Royce", Last: "Gracie", URL: "p/1"},
		{First: "Gerard", Last: "Gordeau", URL: "p/2"},
	}))
	require.NoError(t, stores.FighterTott.Write(ctx, []records.FighterTott{
		{Fighter: "Royce Gracie", Height: "6' 1\"", URL: "p/1"},
	}))

	makeTx := NewMakeTx(database)
	loads, err := Load(ctx, makeTx, stores)
	require.NoError(t, err)
	require.Equal(t, []TableLoad{
		{Table: "event_details", Rows: 2, Inserted: 2},
		{Table: "fight_details", Rows: 1, Inserted: 1},
		{Table: "fight_results", Rows: 1, Inserted: 1},
		{Table: "fight_stats", Rows: 2, Inserted: 2},
		{Table: "fighter_details", Rows: 2, Inserted: 2},
		{Table: "fighter_stats", Rows: 1, Inserted: 1},
	}, loads)

	// existing keys are ignored, not overwritten
	require.NoError(t, stores.Events.Write(ctx, []records.Event{
		{Name: "UFC 3: The American Dream", URL: "e/3"},
		{Name: "UFC 2: No Way Out", URL: "changed"},
	}))
	loads, err = Load(ctx, makeTx, stores)
	require.NoError(t, err)
	require.Equal(t, TableLoad{Table: "event_details", Rows: 2, Inserted: 1}, loads[0])
	for _, l := range loads[1:] {
		require.Zero(t, l.Inserted, l.Table)
	}

	var url string
	require.NoError(t, database.GetContext(ctx, &url, "SELECT url FROM event_details WHERE event = ?", "UFC 2: No Way Out"))
	require.Equal(t, "e/2", url)

	qry := New(database)
	for table, expected := range map[string]int{
		"event_details":   3,
		"fight_details":   1,
		"fight_results":   1,
		"fight_stats":     2,
		"fighter_details": 2,
		"fighter_stats":   1,
	} {
		count, err := qry.CountRows(ctx, table)
		require.NoError(t, err)
		require.Equal(t, expected, count, table)
	}
	_, err = qry.CountRows(ctx, "sqlite_master; DROP TABLE event_details")
	require.Error(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "ufc_database.db")

	database, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = New(database).InsertEvent(ctx, records.Event{Name: "UFC 1: The Beginning", URL: "e/1"})
	require.NoError(t, err)
	require.NoError(t, database.Close())

	database, err = Open(ctx, path)
	require.NoError(t, err)
	defer database.Close()
	count, err := New(database).CountRows(ctx, "event_details")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
