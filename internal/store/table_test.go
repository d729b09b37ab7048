package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"ufcstats/internal/config"
	"ufcstats/internal/records"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testStores(t testing.TB) Stores {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.EventDetailsFile = filepath.Join(dir, "events.csv")
	cfg.FightDetailsFile = filepath.Join(dir, "fights.csv")
	cfg.FightResultsFile = filepath.Join(dir, "results.csv")
	cfg.FightStatsFile = filepath.Join(dir, "stats.csv")
	cfg.FighterDetailsFile = filepath.Join(dir, "fighters.csv")
	cfg.FighterTottFile = filepath.Join(dir, "tott.csv")
	return FromConfig(cfg)
}

func TestTableRoundTrip(t *testing.T) {
	ctx := context.Background()
	stores := testStores(t)

	events, err := stores.Events.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, events)

	written := []records.Event{
		{Name: "UFC 2: No Way Out", URL: "http://ufcstats.com/event-details/2", Date: "March 11, 1994", Location: "Denver, Colorado, USA"},
		{Name: `UFC 1: "The Beginning"`, URL: "http://ufcstats.com/event-details/1", Date: "November 12, 1993", Location: "Denver, Colorado, USA"},
	}
	require.NoError(t, stores.Events.Write(ctx, written))

	events, err = stores.Events.Read(ctx)
	require.NoError(t, err)
	diff := cmp.Diff(written, events)
	if diff != "" {
		t.Fatal(diff)
	}

	contents, err := os.ReadFile(stores.Events.Path)
	require.NoError(t, err)
	require.Equal(t, "EVENT,URL,DATE,LOCATION\n"+
		"UFC 2: No Way Out,http://ufcstats.com/event-details/2,\"March 11, 1994\",\"Denver, Colorado, USA\"\n"+
		"\"UFC 1: \"\"The Beginning\"\"\",http://ufcstats.com/event-details/1,\"November 12, 1993\",\"Denver, Colorado, USA\"\n",
		string(contents),
	)

	// no temp files are left next to the table
	entries, err := os.ReadDir(filepath.Dir(stores.Events.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestTableEmptyStatRow(t *testing.T) {
	ctx := context.Background()
	stores := testStores(t)

	written := []records.FightStat{{Event: "UFC 1: The Beginning", Bout: "Royce Gracie vs. Gerard Gordeau"}}
	require.NoError(t, stores.FightStats.Write(ctx, written))

	stats, err := stores.FightStats.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, written, stats)
}

func TestTableDeterministic(t *testing.T) {
	ctx := context.Background()
	stores := testStores(t)

	rows := []records.FighterDetail{
		{First: "Tom", Last: "Aaron", URL: "http://ufcstats.com/fighter-details/1"},
		{First: "Jose", Last: "Aldo", Nickname: "Junior", URL: "http://ufcstats.com/fighter-details/2"},
	}
	require.NoError(t, stores.FighterDetails.Write(ctx, rows))
	first, err := os.ReadFile(stores.FighterDetails.Path)
	require.NoError(t, err)

	read, err := stores.FighterDetails.Read(ctx)
	require.NoError(t, err)
	require.NoError(t, stores.FighterDetails.Write(ctx, read))
	second, err := os.ReadFile(stores.FighterDetails.Path)
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
}

func TestTableColumnMismatch(t *testing.T) {
	ctx := context.Background()
	stores := testStores(t)

	err := os.WriteFile(stores.Fights.Path, []byte("EVENT,BOUT,LINK\na,b,c\n"), 0644)
	require.NoError(t, err)
	_, err = stores.Fights.Read(ctx)
	require.True(t, errors.Is(err, ErrColumnMismatch), err)

	err = os.WriteFile(stores.Fights.Path, []byte("EVENT,URL\na,b\n"), 0644)
	require.NoError(t, err)
	_, err = stores.Fights.Read(ctx)
	require.True(t, errors.Is(err, ErrColumnMismatch), err)

	err = os.WriteFile(stores.Fights.Path, []byte("EVENT,BOUT,URL\na,b\n"), 0644)
	require.NoError(t, err)
	_, err = stores.Fights.Read(ctx)
	require.True(t, errors.Is(err, ErrColumnMismatch), err)

	narrow := NewTable(stores.Fights.Path, []string{"EVENT", "BOUT"}, records.Fight.Values, records.FightFromValues)
	err = narrow.Write(ctx, []records.Fight{{Event: "a", Bout: "b", URL: "c"}})
	require.True(t, errors.Is(err, ErrColumnMismatch), err)
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	stores := testStores(t)

	require.NoError(t, stores.Fights.Write(ctx, []records.Fight{
		{Event: "UFC 1: The Beginning", Bout: "a vs. b", URL: "1"},
		{Event: "UFC 1: The Beginning", Bout: "c vs. d", URL: "2"},
	}))
	require.NoError(t, stores.FighterTott.Write(ctx, []records.FighterTott{{Fighter: "Tom Aaron", URL: "1"}}))

	counts, err := stores.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, Counts{Fights: 2, FighterTott: 1}, counts)
}
