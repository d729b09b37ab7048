package records

import (
	"fmt"
	"strings"
	"ufcstats/lib/textutil"

	"github.com/cockroachdb/errors"
)

const (
	BoutSeparator    = " vs. "
	OutcomeSeparator = "/"
)

func BoutName(fighterA, fighterB string) string {
	return fighterA + BoutSeparator + fighterB
}

// the flat list a fight page reduces to:
//
//	0      event
//	1, 2   fighter names
//	3, 4   outcome tokens (W, L, D, NC)
//	5      weight class
//	6      "Method: ..."
//	7..10  "Round: ...", "Time: ...", "Time format: ...", "Referee: ..."
//	11     "Details: ..."
//	12     "URL: ..."
const fightResultFragments = 13

// AssembleFightResult rebuilds a FightResult from the positional fragments
// described above.
func AssembleFightResult(fragments []string) (FightResult, error) {
	if len(fragments) != fightResultFragments {
		return FightResult{}, errors.Mark(
			errors.Newf("fight result: expected %d fragments, got %d", fightResultFragments, len(fragments)),
			ErrMalformedFragments,
		)
	}

	labeled := make([]string, 0, len(fragments)-5)
	for _, text := range fragments[5:] {
		labeled = append(labeled, strings.TrimSpace(textutil.StripLabel(text)))
	}

	return FightResult{
		Event:       strings.TrimSpace(fragments[0]),
		Bout:        BoutName(strings.TrimSpace(fragments[1]), strings.TrimSpace(fragments[2])),
		Outcome:     strings.TrimSpace(fragments[3]) + OutcomeSeparator + strings.TrimSpace(fragments[4]),
		WeightClass: labeled[0],
		Method:      labeled[1],
		Round:       labeled[2],
		Time:        labeled[3],
		TimeFormat:  labeled[4],
		Referee:     labeled[5],
		Details:     labeled[6],
		URL:         labeled[7],
	}, nil
}

// GroupStatBlocks splits one fighter's flat stat cells into blocks. Every
// table row starts with the fighter's name, so a block begins wherever a run
// of cells equal to the first cell begins.
func GroupStatBlocks(flat []string) [][]string {
	if len(flat) == 0 {
		return nil
	}

	marker := flat[0]
	var blocks [][]string
	inMarkerRun := false
	for _, cell := range flat {
		isMarker := cell == marker
		if isMarker && !inMarkerRun {
			blocks = append(blocks, nil)
		}
		inMarkerRun = isMarker
		blocks[len(blocks)-1] = append(blocks[len(blocks)-1], cell)
	}
	return blocks
}

// StatLayout names the cells of a totals block and a significant strikes
// block. Both tables are configured with a leading ROUND column, which the
// page does not carry (rounds are numbered from block order), so cell i of a
// block is column i+1.
type StatLayout struct {
	totals      map[string]int
	significant map[string]int

	totalsWidth      int
	significantWidth int
}

const roundColumn = "ROUND"

var (
	totalsFields      = []string{"FIGHTER", "KD", "SIG.STR.", "SIG.STR. %", "TOTAL STR.", "TD", "TD %", "SUB.ATT", "REV.", "CTRL"}
	significantFields = []string{"FIGHTER", "HEAD", "BODY", "LEG", "DISTANCE", "CLINCH", "GROUND"}
)

func blockIndex(table string, columns, required []string) (map[string]int, error) {
	if len(columns) == 0 || columns[0] != roundColumn {
		return nil, errors.Newf("%s columns must start with %s, got %v", table, roundColumn, columns)
	}
	index := make(map[string]int, len(columns)-1)
	for i, name := range columns[1:] {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, errors.Newf("%s columns are missing %q", table, name)
		}
	}
	return index, nil
}

// NewStatLayout builds a layout from the configured totals and significant
// strikes column lists.
func NewStatLayout(totalsColumns, significantColumns []string) (StatLayout, error) {
	totals, err := blockIndex("totals", totalsColumns, totalsFields)
	if err != nil {
		return StatLayout{}, err
	}
	significant, err := blockIndex("significant strikes", significantColumns, significantFields)
	if err != nil {
		return StatLayout{}, err
	}
	return StatLayout{
		totals:           totals,
		significant:      significant,
		totalsWidth:      len(totalsColumns) - 1,
		significantWidth: len(significantColumns) - 1,
	}, nil
}

// BuildStatRows turns a fighter's blocks, laid out as
//
//	[totals summary, totals round 1..n, sig. strikes summary, sig. strikes round 1..n]
//
// into one row per round. The summary blocks are skipped. A fighter with no
// blocks (fights that predate stat collection) gets a single empty row. The
// returned rows have no Event or Bout, see CombineFighterStats.
func (l StatLayout) BuildStatRows(blocks [][]string) ([]FightStat, error) {
	if len(blocks) == 0 {
		return []FightStat{{}}, nil
	}
	if len(blocks) < 2 || len(blocks)%2 != 0 {
		return nil, errors.Mark(
			errors.Newf("fight stats: expected 2 + 2n blocks, got %d", len(blocks)),
			ErrMalformedFragments,
		)
	}

	half := len(blocks) / 2
	rounds := (len(blocks) - 2) / 2

	rows := make([]FightStat, 0, rounds)
	for i := 0; i < rounds; i++ {
		totals := blocks[i+1]
		sig := blocks[i+1+half]
		if len(totals) != l.totalsWidth {
			return nil, errors.Mark(
				errors.Newf("fight stats: round %d totals has %d cells, expected %d", i+1, len(totals), l.totalsWidth),
				ErrMalformedFragments,
			)
		}
		if len(sig) != l.significantWidth {
			return nil, errors.Mark(
				errors.Newf("fight stats: round %d significant strikes has %d cells, expected %d", i+1, len(sig), l.significantWidth),
				ErrMalformedFragments,
			)
		}

		t := func(name string) string { return totals[l.totals[name]] }
		g := func(name string) string { return sig[l.significant[name]] }
		rows = append(rows, FightStat{
			Round:     fmt.Sprintf("Round %d", i+1),
			Fighter:   t("FIGHTER"),
			KD:        t("KD"),
			SigStr:    t("SIG.STR."),
			SigStrPct: t("SIG.STR. %"),
			TotalStr:  t("TOTAL STR."),
			TD:        t("TD"),
			TDPct:     t("TD %"),
			SubAtt:    t("SUB.ATT"),
			Rev:       t("REV."),
			Ctrl:      t("CTRL"),
			Head:      g("HEAD"),
			Body:      g("BODY"),
			Leg:       g("LEG"),
			Distance:  g("DISTANCE"),
			Clinch:    g("CLINCH"),
			Ground:    g("GROUND"),
		})
	}
	return rows, nil
}

// CombineFighterStats concatenates both fighters' rows and stamps them with
// the event and bout they belong to.
func CombineFighterStats(event, fighterA, fighterB string, a, b []FightStat) []FightStat {
	bout := BoutName(fighterA, fighterB)
	out := make([]FightStat, 0, len(a)+len(b))
	for _, rows := range [][]FightStat{a, b} {
		for _, row := range rows {
			row.Event = event
			row.Bout = bout
			out = append(out, row)
		}
	}
	return out
}

var tottLabels = []string{"fighter", "height", "weight", "reach", "stance", "dob"}

// AssembleFighterTott rebuilds a tale of the tape from the labeled fragments
// of a fighter's page ("Fighter:...", "Height:...", ..., "DOB:...").
func AssembleFighterTott(fragments []string, url string) (FighterTott, error) {
	if len(fragments) != len(tottLabels) {
		return FighterTott{}, errors.Mark(
			errors.Newf("fighter tott: expected %d fragments, got %d", len(tottLabels), len(fragments)),
			ErrMalformedFragments,
		)
	}

	values := make([]string, len(fragments))
	for i, text := range fragments {
		label, _ := textutil.SplitPair(text, ":")
		if !strings.EqualFold(strings.TrimSpace(label), tottLabels[i]) {
			return FighterTott{}, errors.Mark(
				errors.Newf("fighter tott: fragment %d has label %q, expected %q", i, label, tottLabels[i]),
				ErrMalformedFragments,
			)
		}
		values[i] = strings.TrimSpace(textutil.StripLabel(text))
	}

	return FighterTott{
		Fighter: values[0],
		Height:  values[1],
		Weight:  values[2],
		Reach:   values[3],
		Stance:  values[4],
		DOB:     values[5],
		URL:     url,
	}, nil
}
