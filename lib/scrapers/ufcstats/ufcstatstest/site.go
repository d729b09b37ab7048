// Package ufcstatstest serves a small in-memory copy of ufcstats.com with
// the same markup the real pages use, for tests.
package ufcstatstest

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const (
	CompletedEventsPath = "/statistics/events/completed"
	FighterListingPath  = "/statistics/fighters"
)

type Fight struct {
	Path        string
	FighterA    string
	FighterB    string
	OutcomeA    string
	OutcomeB    string
	WeightClass string
	Method      string
	Round       string
	Time        string
	TimeFormat  string
	Referee     string
	Details     string
	// Rounds is the number of per round stat rows. A fight with zero rounds
	// has no stat tables at all.
	Rounds int
}

type Event struct {
	Name string
	// Title is the heading of the event page, Name when empty.
	Title    string
	Path     string
	Date     string
	Location string
	Fights   []Fight
}

type Fighter struct {
	First    string
	Last     string
	Nickname string
	Path     string
	Height   string
	Weight   string
	Reach    string
	Stance   string
	DOB      string
}

type Site struct {
	// Upcoming is listed first on the completed events page, with a date
	// and location but no stats link.
	Upcoming Event
	Events   []Event
	Fighters []Fighter

	mutex    sync.Mutex
	requests map[string]int
	failing  map[string]bool
}

// NewServer starts a test server for the site. The caller must Close it.
func NewServer(site *Site) *httptest.Server {
	return httptest.NewServer(site)
}

// Fail makes every later request to `path` answer with a 500.
func (s *Site) Fail(path string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.failing == nil {
		s.failing = map[string]bool{}
	}
	s.failing[path] = true
}

// Requests returns how many times `path` was requested.
func (s *Site) Requests(path string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.requests[path]
}

func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	if s.requests == nil {
		s.requests = map[string]int{}
	}
	s.requests[r.URL.Path]++
	failing := s.failing[r.URL.Path]
	s.mutex.Unlock()

	if failing {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}

	base := "http://" + r.Host
	page, ok := s.render(base, r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

func (s *Site) render(base string, r *http.Request) (string, bool) {
	path := r.URL.Path
	switch path {
	case CompletedEventsPath:
		return s.eventListing(base), true
	case FighterListingPath:
		return s.fighterListing(base, r.URL.Query().Get("char")), true
	}
	for _, e := range s.Events {
		if e.Path == path {
			return eventCard(base, e), true
		}
		for _, f := range e.Fights {
			if f.Path == path {
				return fightPage(base, e, f), true
			}
		}
	}
	for _, f := range s.Fighters {
		if f.Path == path {
			return fighterPage(f), true
		}
	}
	return "", false
}

func esc(text string) string {
	return html.EscapeString(text)
}

func (s *Site) eventListing(base string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table class="b-statistics__table-events"><tbody>`)
	b.WriteString(`<tr class="b-statistics__table-row"><td class="b-statistics__table-col"><i class="b-statistics__table-content">`)
	fmt.Fprintf(&b, `<a href="%s%s" class="b-link b-link_style_white">%s</a>`, base, s.Upcoming.Path, esc(s.Upcoming.Name))
	fmt.Fprintf(&b, `<span class="b-statistics__date">%s</span></i></td>`, esc(s.Upcoming.Date))
	fmt.Fprintf(&b, `<td class="b-statistics__table-col b-statistics__table-col_style_big-top-padding">%s</td></tr>`, esc(s.Upcoming.Location))
	for _, e := range s.Events {
		b.WriteString(`<tr class="b-statistics__table-row"><td class="b-statistics__table-col"><i class="b-statistics__table-content">`)
		fmt.Fprintf(&b, "<a href=\"%s%s\" class=\"b-link b-link_style_black\">\n    %s\n  </a>", base, e.Path, esc(e.Name))
		fmt.Fprintf(&b, "<span class=\"b-statistics__date\">\n    %s\n  </span></i></td>", esc(e.Date))
		fmt.Fprintf(&b, "<td class=\"b-statistics__table-col b-statistics__table-col_style_big-top-padding\">\n    %s\n  </td></tr>", esc(e.Location))
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

func eventCard(base string, e Event) string {
	title := e.Title
	if title == "" {
		title = e.Name
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<html><body><h2 class=\"b-content__title\">\n  <span class=\"b-content__title-highlight\">\n    %s\n  </span>\n</h2>", esc(title))
	b.WriteString(`<table class="b-fight-details__table"><tbody>`)
	for _, f := range e.Fights {
		fmt.Fprintf(&b, `<tr class="b-fight-details__table-row b-fight-details__table-row__hover js-fight-details-click" data-link="%s%s">`, base, f.Path)
		b.WriteString(`<td class="b-fight-details__table-col l-page_align_left">`)
		fmt.Fprintf(&b, "<p class=\"b-fight-details__table-text\"><a class=\"b-link b-link_style_black\" href=\"#\">\n  %s\n</a></p>", esc(f.FighterA))
		fmt.Fprintf(&b, "<p class=\"b-fight-details__table-text\"><a class=\"b-link b-link_style_black\" href=\"#\">\n  %s\n</a></p>", esc(f.FighterB))
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

// TotalsCells is the totals row of `fighter` for `round`, round 0 being
// the whole fight summary.
func TotalsCells(fighter string, round int) []string {
	return []string{
		fighter,
		fmt.Sprint(round % 2),
		fmt.Sprintf("%d of %d", round+10, round+20),
		fmt.Sprintf("%d%%", round+40),
		fmt.Sprintf("%d of %d", round+30, round+50),
		fmt.Sprintf("%d of %d", round, round+2),
		fmt.Sprintf("%d%%", round*10),
		fmt.Sprint(round),
		"0",
		fmt.Sprintf("%d:%02d", round, round+5),
	}
}

// SignificantCells is the significant strikes row of `fighter` for `round`.
func SignificantCells(fighter string, round int) []string {
	return []string{
		fighter,
		fmt.Sprintf("%d of %d", round+10, round+20),
		fmt.Sprintf("%d%%", round+40),
		fmt.Sprintf("%d of %d", round+5, round+11),
		fmt.Sprintf("%d of %d", round+3, round+4),
		fmt.Sprintf("%d of %d", round+2, round+5),
		fmt.Sprintf("%d of %d", round+7, round+15),
		fmt.Sprintf("%d of %d", round+1, round+2),
		fmt.Sprintf("%d of %d", round+2, round+3),
	}
}

func statRow(b *strings.Builder, a, bCells []string) {
	b.WriteString(`<tr class="b-fight-details__table-row">`)
	for i := range a {
		fmt.Fprintf(b,
			"<td class=\"b-fight-details__table-col\"><p class=\"b-fight-details__table-text\">\n  %s\n</p><p class=\"b-fight-details__table-text\">\n  %s\n</p></td>",
			esc(a[i]), esc(bCells[i]),
		)
	}
	b.WriteString(`</tr>`)
}

func statTables(b *strings.Builder, f Fight) {
	if f.Rounds == 0 {
		return
	}
	for _, cells := range []func(string, int) []string{TotalsCells, SignificantCells} {
		b.WriteString(`<table><tbody>`)
		statRow(b, cells(f.FighterA, 0), cells(f.FighterB, 0))
		b.WriteString(`</tbody></table><table>`)
		for r := 1; r <= f.Rounds; r++ {
			fmt.Fprintf(b, `<thead class="b-fight-details__table-row_type_head"><tr><th>Round %d</th></tr></thead>`, r)
			statRow(b, cells(f.FighterA, r), cells(f.FighterB, r))
		}
		b.WriteString(`</table>`)
	}
}

func fightPage(base string, e Event, f Fight) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><body><h2 class=\"b-content__title\">\n  <a class=\"b-link\" href=\"%s%s\">\n    %s\n  </a>\n</h2>", base, e.Path, esc(e.Name))
	b.WriteString(`<div class="b-fight-details__persons">`)
	for _, person := range [][2]string{{f.OutcomeA, f.FighterA}, {f.OutcomeB, f.FighterB}} {
		fmt.Fprintf(&b,
			"<div class=\"b-fight-details__person\"><i class=\"b-fight-details__person-status\">\n    %s\n  </i><div class=\"b-fight-details__person-text\"><h3 class=\"b-fight-details__person-name\"><a class=\"b-link b-fight-details__person-link\" href=\"#\">%s </a></h3></div></div>",
			esc(person[0]), esc(person[1]),
		)
	}
	b.WriteString(`</div><div class="b-fight-details__fight">`)
	fmt.Fprintf(&b, "<div class=\"b-fight-details__fight-head\"><i class=\"b-fight-details__fight-title\">\n    %s\n  </i></div>", esc(f.WeightClass))
	b.WriteString(`<div class="b-fight-details__content"><p class="b-fight-details__text">`)
	fmt.Fprintf(&b, `<i class="b-fight-details__text-item_first"><i class="b-fight-details__label">Method:</i><i style="font-style: normal">%s</i></i>`, esc(f.Method))
	for _, item := range [][2]string{
		{"Round:", f.Round},
		{"Time:", f.Time},
		{"Time format:", f.TimeFormat},
		{"Referee:", f.Referee},
	} {
		fmt.Fprintf(&b, "<i class=\"b-fight-details__text-item\">\n  <i class=\"b-fight-details__label\">%s</i>\n  %s\n</i>", item[0], esc(item[1]))
	}
	b.WriteString(`</p><p class="b-fight-details__text">`)
	fmt.Fprintf(&b, "<i class=\"b-fight-details__label\">Details:</i>\n  %s\n</p>", esc(f.Details))
	b.WriteString(`</div></div>`)
	statTables(&b, f)
	b.WriteString(`</body></html>`)
	return b.String()
}

func (s *Site) fighterListing(base, char string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table class="b-statistics__table"><tbody>`)
	for _, f := range s.Fighters {
		if char == "" || !strings.HasPrefix(strings.ToLower(f.Last), char) {
			continue
		}
		b.WriteString(`<tr class="b-statistics__table-row">`)
		for _, name := range []string{f.First, f.Last, f.Nickname} {
			fmt.Fprintf(&b, `<td class="b-statistics__table-col"><a href="%s%s" class="b-link b-link_style_black">%s</a></td>`, base, f.Path, esc(name))
		}
		fmt.Fprintf(&b, `<td class="b-statistics__table-col">%s</td></tr>`, esc(f.Height))
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

func fighterPage(f Fighter) string {
	var b strings.Builder
	name := strings.TrimSpace(f.First + " " + f.Last)
	fmt.Fprintf(&b, "<html><body><h2 class=\"b-content__title\">\n  <span class=\"b-content__title-highlight\">\n    %s\n  </span>\n</h2>", esc(name))
	b.WriteString(`<div class="b-list__info-box"><ul class="b-list__box-list">`)
	for _, item := range [][2]string{
		{"Height:", f.Height},
		{"Weight:", f.Weight},
		{"Reach:", f.Reach},
		{"STANCE:", f.Stance},
		{"DOB:", f.DOB},
	} {
		fmt.Fprintf(&b,
			"<li class=\"b-list__box-list-item\">\n  <i class=\"b-list__box-item-title\">\n    %s\n  </i>\n  %s\n</li>",
			item[0], esc(item[1]),
		)
	}
	b.WriteString(`</ul></div><ul class="b-list__box-list"><li><i>SLpM:</i> 3.53</li></ul></body></html>`)
	return b.String()
}
