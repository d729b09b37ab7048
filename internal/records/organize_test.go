package records

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAssembleFightResult(t *testing.T) {
	fragments := []string{
		"UFC 1: The Beginning",
		"Royce Gracie",
		"Gerard Gordeau",
		"W",
		"L",
		"Open Weight Bout",
		"Method:Submission",
		"Round:1",
		"Time:1:44",
		"Time format:No Time Limit",
		"Referee:Joao Alberto Barreto",
		"Details:Rear Naked Choke",
		"URL:http://ufcstats.com/fight-details/1",
	}

	result, err := AssembleFightResult(fragments)
	require.NoError(t, err)

	diff := cmp.Diff(FightResult{
		Event:       "UFC 1: The Beginning",
		Bout:        "Royce Gracie vs. Gerard Gordeau",
		Outcome:     "W/L",
		WeightClass: "Open Weight Bout",
		Method:      "Submission",
		Round:       "1",
		Time:        "1:44",
		TimeFormat:  "No Time Limit",
		Referee:     "Joao Alberto Barreto",
		Details:     "Rear Naked Choke",
		URL:         "http://ufcstats.com/fight-details/1",
	}, result)
	if diff != "" {
		t.Fatal(diff)
	}

	_, err = AssembleFightResult(fragments[:12])
	require.True(t, errors.Is(err, ErrMalformedFragments))
}

func totalsBlock(name string, round int) []string {
	r := fmt.Sprint(round)
	return []string{name, r, r + " of 10", "50%", r + " of 20", "0 of 1", "0%", "0", "0", "1:0" + r}
}

func sigBlock(name string, round int) []string {
	r := fmt.Sprint(round)
	return []string{name, r + " of 10", "50%", r + " of 5", "1 of 2", "0 of 1", r + " of 7", "0 of 0", "0 of 3"}
}

func statBlocks(name string, rounds int) [][]string {
	var blocks [][]string
	blocks = append(blocks, totalsBlock(name, 0))
	for i := 1; i <= rounds; i++ {
		blocks = append(blocks, totalsBlock(name, i))
	}
	blocks = append(blocks, sigBlock(name, 0))
	for i := 1; i <= rounds; i++ {
		blocks = append(blocks, sigBlock(name, i))
	}
	return blocks
}

func flatten(blocks [][]string) []string {
	var out []string
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

func TestGroupStatBlocks(t *testing.T) {
	blocks := statBlocks("Royce Gracie", 3)
	grouped := GroupStatBlocks(flatten(blocks))
	diff := cmp.Diff(blocks, grouped)
	if diff != "" {
		t.Fatal(diff)
	}

	require.Nil(t, GroupStatBlocks(nil))

	// a run of repeated markers stays in one block
	grouped = GroupStatBlocks([]string{"a", "a", "1", "a", "2"})
	require.Equal(t, [][]string{{"a", "a", "1"}, {"a", "2"}}, grouped)
}

var (
	totalsColumns      = []string{"ROUND", "FIGHTER", "KD", "SIG.STR.", "SIG.STR. %", "TOTAL STR.", "TD", "TD %", "SUB.ATT", "REV.", "CTRL"}
	significantColumns = []string{"ROUND", "FIGHTER", "SIG.STR.", "SIG.STR. %", "HEAD", "BODY", "LEG", "DISTANCE", "CLINCH", "GROUND"}
)

func testLayout(t testing.TB) StatLayout {
	layout, err := NewStatLayout(totalsColumns, significantColumns)
	require.NoError(t, err)
	return layout
}

func TestNewStatLayout(t *testing.T) {
	_, err := NewStatLayout(totalsColumns[1:], significantColumns)
	require.ErrorContains(t, err, "must start with ROUND")

	_, err = NewStatLayout(totalsColumns, []string{"ROUND", "FIGHTER", "HEAD"})
	require.ErrorContains(t, err, `significant strikes columns are missing "BODY"`)

	// columns are looked up by name, and extra columns widen the block.
	reordered := []string{"ROUND", "FIGHTER", "SIG.STR.", "SIG.STR. %", "GROUND", "CLINCH", "DISTANCE", "LEG", "BODY", "HEAD", "ACCURACY"}
	layout, err := NewStatLayout(totalsColumns, reordered)
	require.NoError(t, err)
	sig := []string{"Royce Gracie", "3 of 10", "30%", "g", "c", "d", "l", "b", "h", "a"}
	rows, err := layout.BuildStatRows([][]string{
		totalsBlock("Royce Gracie", 0), totalsBlock("Royce Gracie", 1),
		sig, sig,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "h", rows[0].Head)
	require.Equal(t, "b", rows[0].Body)
	require.Equal(t, "g", rows[0].Ground)

	// the default layout rejects the wider block
	_, err = testLayout(t).BuildStatRows([][]string{
		totalsBlock("Royce Gracie", 0), totalsBlock("Royce Gracie", 1),
		sig, sig,
	})
	require.True(t, errors.Is(err, ErrMalformedFragments))
}

func TestBuildStatRows(t *testing.T) {
	layout := testLayout(t)
	for rounds := 0; rounds <= 5; rounds++ {
		rows, err := layout.BuildStatRows(statBlocks("Royce Gracie", rounds))
		require.NoError(t, err)
		require.Len(t, rows, rounds)
		for i, row := range rows {
			require.Equal(t, fmt.Sprintf("Round %d", i+1), row.Round)
			require.Equal(t, "Royce Gracie", row.Fighter)
			require.Equal(t, fmt.Sprint(i+1), row.KD)
			require.Equal(t, fmt.Sprintf("%d of 5", i+1), row.Head)
			require.Equal(t, fmt.Sprintf("%d of 7", i+1), row.Distance)
			require.Equal(t, "0 of 3", row.Ground)
		}
	}

	rows, err := layout.BuildStatRows(nil)
	require.NoError(t, err)
	require.Equal(t, []FightStat{{}}, rows)

	_, err = layout.BuildStatRows(statBlocks("x", 2)[:5])
	require.True(t, errors.Is(err, ErrMalformedFragments))

	short := statBlocks("x", 1)
	short[1] = short[1][:4]
	_, err = layout.BuildStatRows(short)
	require.True(t, errors.Is(err, ErrMalformedFragments))
}

func TestCombineFighterStats(t *testing.T) {
	a, err := testLayout(t).BuildStatRows(statBlocks("A", 2))
	require.NoError(t, err)
	b, err := testLayout(t).BuildStatRows(nil)
	require.NoError(t, err)

	combined := CombineFighterStats("UFC 2: No Way Out", "A", "B", a, b)
	require.Len(t, combined, 3)
	for _, row := range combined {
		require.Equal(t, "UFC 2: No Way Out", row.Event)
		require.Equal(t, "A vs. B", row.Bout)
	}
	require.Equal(t, "A", combined[0].Fighter)
	require.Equal(t, "", combined[2].Fighter)
}

func TestAssembleFighterTott(t *testing.T) {
	tott, err := AssembleFighterTott([]string{
		"Fighter:Jose Aldo",
		"Height:5' 7\"",
		"Weight:145 lbs.",
		"Reach:70\"",
		"STANCE:Orthodox",
		"DOB:Sep 09, 1986",
	}, "http://ufcstats.com/fighter-details/1")
	require.NoError(t, err)
	require.Equal(t, FighterTott{
		Fighter: "Jose Aldo",
		Height:  "5' 7\"",
		Weight:  "145 lbs.",
		Reach:   "70\"",
		Stance:  "Orthodox",
		DOB:     "Sep 09, 1986",
		URL:     "http://ufcstats.com/fighter-details/1",
	}, tott)

	_, err = AssembleFighterTott([]string{"Fighter:x", "Weight:1", "Height:2", "Reach:3", "STANCE:4", "DOB:5"}, "")
	require.True(t, errors.Is(err, ErrMalformedFragments))
}

func TestValuesRoundTrip(t *testing.T) {
	stat := FightStat{Event: "e", Bout: "b", Round: "Round 1", Ground: "0 of 3"}
	decoded, err := FightStatFromValues(stat.Values())
	require.NoError(t, err)
	require.Equal(t, stat, decoded)

	_, err = EventFromValues([]string{"only", "three", "values"})
	require.True(t, errors.Is(err, ErrMalformedFragments))
}
