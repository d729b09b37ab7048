// Package records holds the normalized rows produced by a scrape and the
// functions that regroup raw page fragments into them.
package records

import "github.com/cockroachdb/errors"

// ErrMalformedFragments is returned when a list of page fragments does not
// have the cardinality a record is assembled from.
var ErrMalformedFragments = errors.New("malformed record fragments")

// Event is keyed by its name.
type Event struct {
	Name     string `db:"event"`
	URL      string `db:"url"`
	Date     string `db:"date"`
	Location string `db:"location"`
}

// Fight is keyed by URL, Bout is "<fighter a> vs. <fighter b>".
type Fight struct {
	Event string `db:"event"`
	Bout  string `db:"bout"`
	URL   string `db:"url"`
}

// FightResult is keyed by URL, Outcome is "<a result>/<b result>".
type FightResult struct {
	Event       string `db:"event"`
	Bout        string `db:"bout"`
	Outcome     string `db:"outcome"`
	WeightClass string `db:"weightclass"`
	Method      string `db:"method"`
	Round       string `db:"round"`
	Time        string `db:"time"`
	TimeFormat  string `db:"time_format"`
	Referee     string `db:"referee"`
	Details     string `db:"details"`
	URL         string `db:"url"`
}

// FightStat is one fighter's line for one round of a fight. Compound counts
// are kept in their "X of Y" form, see internal/rewrite for the split form.
type FightStat struct {
	Event     string `db:"event"`
	Bout      string `db:"bout"`
	Round     string `db:"round"`
	Fighter   string `db:"fighter"`
	KD        string `db:"kd"`
	SigStr    string `db:"sig_str"`
	SigStrPct string `db:"sig_str_pct"`
	TotalStr  string `db:"total_str"`
	TD        string `db:"td"`
	TDPct     string `db:"td_pct"`
	SubAtt    string `db:"sub_att"`
	Rev       string `db:"rev"`
	Ctrl      string `db:"ctrl"`
	Head      string `db:"head"`
	Body      string `db:"body"`
	Leg       string `db:"leg"`
	Distance  string `db:"distance"`
	Clinch    string `db:"clinch"`
	Ground    string `db:"ground"`
}

// FighterDetail is keyed by URL.
type FighterDetail struct {
	First    string `db:"first"`
	Last     string `db:"last"`
	Nickname string `db:"nickname"`
	URL      string `db:"url"`
}

// FighterTott is a fighter's tale of the tape, keyed by the fighter's URL.
type FighterTott struct {
	Fighter string `db:"fighter"`
	Height  string `db:"height"`
	Weight  string `db:"weight"`
	Reach   string `db:"reach"`
	Stance  string `db:"stance"`
	DOB     string `db:"dob"`
	URL     string `db:"url"`
}
