package textutil

import (
	"math/rand"
	"testing"
	"ufcstats/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExtractEventNumber(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "UFC 205: Title Fight", expected: "205"},
		{name: "UFC 1: The Beginning", expected: "1"},
		{name: "Fight Night", expected: ""},
		{name: "UFC Fight Night: Smith vs. Jones", expected: ""},
		{name: "UFC 300", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, ExtractEventNumber(test.name), test.name)
	}
}

func TestSplitPair(t *testing.T) {
	left, right := SplitPair("A vs. B", " vs. ")
	require.Equal(t, "A", left)
	require.Equal(t, "B", right)

	left, right = SplitPair("Jon Jones", " vs. ")
	require.Equal(t, "Jon Jones", left)
	require.Equal(t, "", right)

	left, right = SplitPair("W/L", "/")
	require.Equal(t, "W", left)
	require.Equal(t, "L", right)

	left, right = SplitPair("A vs. B vs. C", " vs. ")
	require.Equal(t, "A", left)
	require.Equal(t, "B vs. C", right)
}

func TestStripLabel(t *testing.T) {
	testCases := []struct {
		text     string
		expected string
	}{
		{text: "Method: TKO", expected: "TKO"},
		{text: "Method:KO/TKO", expected: "KO/TKO"},
		{text: "Round:  3", expected: " 3"},
		{text: "Time format: 3 Rnd (5-5-5)", expected: "3 Rnd (5-5-5)"},
		{text: "Details: Judge A 29 - 28. Judge B 29 - 28.", expected: "Judge A 29 - 28. Judge B 29 - 28."},
		{text: "Lightweight Bout", expected: "Lightweight Bout"},
		{text: ": leading", expected: ": leading"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, StripLabel(test.text), test.text)
	}

	rndm := rand.New(rand.NewSource(205))
	for range 200 {
		label := testutil.RandomWords(rndm, 1+rndm.Intn(3))
		value := testutil.RandomWords(rndm, rndm.Intn(4))
		require.Equal(t, value, StripLabel(label+": "+value))
		require.Equal(t, value, StripLabel(label+":"+value))
	}
}

func TestStripPercent(t *testing.T) {
	require.Equal(t, "45", StripPercent("45%"))
	require.Equal(t, "100", StripPercent(" 100% "))
	require.Equal(t, "", StripPercent(""))
	require.Equal(t, "---", StripPercent("---"))
}

func TestSplitAttempts(t *testing.T) {
	testCases := []struct {
		text      string
		succeeded string
		attempted string
	}{
		{text: "19 of 32", succeeded: "19", attempted: "32"},
		{text: "0 of 0", succeeded: "0", attempted: "0"},
		{text: "---", succeeded: "", attempted: ""},
		{text: "", succeeded: "", attempted: ""},
		{text: "4 of", succeeded: "", attempted: ""},
		{text: "a of b", succeeded: "", attempted: ""},
		{text: "1 of 2 of 3", succeeded: "", attempted: ""},
	}
	for _, test := range testCases {
		succeeded, attempted := SplitAttempts(test.text)
		require.Equal(t, test.succeeded, succeeded, test.text)
		require.Equal(t, test.attempted, attempted, test.text)
	}
}

func TestCleanFragment(t *testing.T) {
	require.Equal(t, "Method:KO/TKO", CleanFragment("\n      Method:\n      KO/TKO\n    "))
	require.Equal(t, "Jon Jones", CleanFragment("Jon Jones"))
}

func TestReformatDate(t *testing.T) {
	out, err := ReformatDate("November 12, 1993")
	require.NoError(t, err)
	require.Equal(t, "11-12-1993", out)

	out, err = ReformatDate(`"March 2, 2024"`)
	require.NoError(t, err)
	require.Equal(t, "03-02-2024", out)

	_, err = ReformatDate("not a date")
	require.Error(t, err)
}

func TestSplitLocation(t *testing.T) {
	city, country := SplitLocation("Las Vegas, Nevada, USA")
	require.Equal(t, "Las Vegas", city)
	require.Equal(t, "USA", country)

	city, country = SplitLocation("Abu Dhabi, United Arab Emirates")
	require.Equal(t, "Abu Dhabi", city)
	require.Equal(t, "United Arab Emirates", country)

	city, country = SplitLocation("Denver")
	require.Equal(t, "Denver", city)
	require.Equal(t, "Denver", country)
}

func TestExtractJudges(t *testing.T) {
	judges := ExtractJudges("Tony Weeks 45 - 49.Doug Crosby 42 - 49.Jeff Mullen 44 - 49.")
	diff := cmp.Diff([]JudgeScore{
		{Judge: "Tony Weeks", Score: "45 - 49"},
		{Judge: "Doug Crosby", Score: "42 - 49"},
		{Judge: "Jeff Mullen", Score: "44 - 49"},
	}, judges)
	if diff != "" {
		t.Fatal(diff)
	}

	require.Empty(t, ExtractJudges("Rear Naked Choke"))
}
