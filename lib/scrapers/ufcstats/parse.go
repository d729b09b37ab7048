package ufcstats

import (
	"context"
	"net/url"
	"strings"
	"ufcstats/lib/htmlutil"
	"ufcstats/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	blackLinkSelector     = "a.b-link.b-link_style_black"
	contentTitleSelector  = "h2.b-content__title"
	eventDateSelector     = "span.b-statistics__date"
	eventLocationSelector = "td.b-statistics__table-col.b-statistics__table-col_style_big-top-padding"
	boutRowSelector       = "tr.b-fight-details__table-row.b-fight-details__table-row__hover.js-fight-details-click"
	personLinkSelector    = "a.b-link.b-fight-details__person-link"
	personSelector        = "div.b-fight-details__person"
	fightHeadSelector     = "div.b-fight-details__fight-head"
	methodSelector        = "i.b-fight-details__text-item_first"
	fightTextSelector     = "p.b-fight-details__text"
	fightTextItemSelector = "i.b-fight-details__text-item"
	statCellSelector      = "td.b-fight-details__table-col"
	fighterNameSelector   = "span.b-content__title-highlight"
	fighterBoxSelector    = "ul.b-list__box-list"
)

func shapeError(span trace.Span, format string, args ...any) error {
	err := errors.Mark(errors.Newf(format, args...), ErrUnexpectedShape)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// ListedEvent is a row of the completed events listing.
type ListedEvent struct {
	Name     string
	URL      string
	Date     string
	Location string
}

// ParseEventListing reads the completed events listing. The listing puts an
// upcoming event (with a date and location but no link) in its first row, so
// the dates and locations run one ahead of the names and the first of each
// is dropped.
func ParseEventListing(ctx context.Context, doc *goquery.Document) ([]ListedEvent, error) {
	ctx, span := tracer.Start(ctx, "ParseEventListing")
	defer span.End()

	anchors := htmlutil.GetAnchors(ctx, doc.Find(blackLinkSelector))

	var dates []string
	doc.Find(eventDateSelector).Each(func(_ int, s *goquery.Selection) {
		dates = append(dates, strings.TrimSpace(s.Text()))
	})
	var locations []string
	doc.Find(eventLocationSelector).Each(func(_ int, s *goquery.Selection) {
		locations = append(locations, strings.TrimSpace(s.Text()))
	})

	if len(dates) != len(anchors)+1 || len(locations) != len(anchors)+1 {
		return nil, shapeError(
			span,
			"event listing: %d events, %d dates, %d locations (expected one extra date and location)",
			len(anchors), len(dates), len(locations),
		)
	}
	dates = dates[1:]
	locations = locations[1:]

	events := make([]ListedEvent, len(anchors))
	for i, a := range anchors {
		events[i] = ListedEvent{
			Name:     a.Name,
			URL:      a.Href,
			Date:     dates[i],
			Location: locations[i],
		}
	}
	span.SetAttributes(attribute.Int("events", len(events)))
	return events, nil
}

// Bout is a row of an event card, fighters in the order the card lists them.
type Bout struct {
	FighterA string
	FighterB string
	URL      string
}

// EventCard is an event's page, Event being the page heading as printed.
type EventCard struct {
	Event string
	Bouts []Bout
}

// ParseEventCard reads an event's page. Every bout row links to the fight's
// detail page and names its two fighters, in order.
func ParseEventCard(ctx context.Context, doc *goquery.Document) (EventCard, error) {
	_, span := tracer.Start(ctx, "ParseEventCard")
	defer span.End()

	title := doc.Find(contentTitleSelector).First()
	if title.Length() == 0 {
		return EventCard{}, shapeError(span, "event card: missing %s", contentTitleSelector)
	}
	card := EventCard{Event: strings.TrimSpace(title.Text())}
	span.SetAttributes(attribute.String("event", card.Event))

	var links []string
	var missing int
	doc.Find(boutRowSelector).Each(func(_ int, s *goquery.Selection) {
		link, ok := s.Attr("data-link")
		if !ok {
			missing++
		}
		links = append(links, link)
	})
	if missing > 0 {
		return EventCard{}, shapeError(span, "event card %q: %d bout rows without data-link", card.Event, missing)
	}

	var fighters []string
	doc.Find(blackLinkSelector).Each(func(_ int, s *goquery.Selection) {
		fighters = append(fighters, strings.TrimSpace(s.Text()))
	})
	if len(fighters) != 2*len(links) {
		return EventCard{}, shapeError(
			span, "event card %q: %d fighters for %d bouts",
			card.Event, len(fighters), len(links),
		)
	}

	card.Bouts = make([]Bout, len(links))
	for i, link := range links {
		card.Bouts[i] = Bout{
			FighterA: fighters[2*i],
			FighterB: fighters[2*i+1],
			URL:      link,
		}
	}
	return card, nil
}

const (
	fightersPerBout   = 2
	labeledFightItems = 4
	fightFragments    = 13
)

// ParseFightFragments reads the result half of a fight's page as a flat list
// of cleaned text fragments: event, the two fighters, their two outcome
// tokens, weight class, then the labeled method, round, time, time format,
// referee and details fields, and finally "URL:<link>".
func ParseFightFragments(ctx context.Context, doc *goquery.Document, link string) ([]string, error) {
	_, span := tracer.Start(ctx, "ParseFightFragments", trace.WithAttributes(
		attribute.String("url", link),
	))
	defer span.End()

	var fragments []string

	title := doc.Find(contentTitleSelector).First()
	if title.Length() == 0 {
		return nil, shapeError(span, "fight %s: missing %s", link, contentTitleSelector)
	}
	fragments = append(fragments, title.Text())

	people := doc.Find(personLinkSelector)
	if people.Length() != fightersPerBout {
		return nil, shapeError(span, "fight %s: %d fighter links", link, people.Length())
	}
	people.Each(func(_ int, s *goquery.Selection) {
		fragments = append(fragments, s.Text())
	})

	outcomes := doc.Find(personSelector).Find("i")
	if outcomes.Length() != fightersPerBout {
		return nil, shapeError(span, "fight %s: %d outcome tokens", link, outcomes.Length())
	}
	outcomes.Each(func(_ int, s *goquery.Selection) {
		fragments = append(fragments, s.Text())
	})

	head := doc.Find(fightHeadSelector).First()
	if head.Length() == 0 {
		return nil, shapeError(span, "fight %s: missing %s", link, fightHeadSelector)
	}
	fragments = append(fragments, head.Text())

	method := doc.Find(methodSelector).First()
	if method.Length() == 0 {
		return nil, shapeError(span, "fight %s: missing %s", link, methodSelector)
	}
	fragments = append(fragments, method.Text())

	paragraphs := doc.Find(fightTextSelector)
	if paragraphs.Length() < 2 {
		return nil, shapeError(span, "fight %s: %d text paragraphs", link, paragraphs.Length())
	}
	items := paragraphs.Eq(0).Find(fightTextItemSelector)
	if items.Length() != labeledFightItems {
		return nil, shapeError(span, "fight %s: %d labeled items", link, items.Length())
	}
	items.Each(func(_ int, s *goquery.Selection) {
		fragments = append(fragments, strings.TrimSpace(s.Text()))
	})
	fragments = append(fragments, paragraphs.Eq(1).Text())

	for i, text := range fragments {
		fragments[i] = textutil.CleanFragment(text)
	}
	fragments = append(fragments, "URL:"+link)

	if len(fragments) != fightFragments {
		return nil, shapeError(span, "fight %s: %d fragments", link, len(fragments))
	}
	return fragments, nil
}

// ParseFightStats returns the stat cells of both fighters. Each table cell
// stacks one value per fighter, fighter a first.
func ParseFightStats(ctx context.Context, doc *goquery.Document) ([]string, []string) {
	_, span := tracer.Start(ctx, "ParseFightStats")
	defer span.End()

	var a, b []string
	doc.Find(statCellSelector).Each(func(_ int, td *goquery.Selection) {
		td.Find("p").Each(func(i int, p *goquery.Selection) {
			text := strings.TrimSpace(p.Text())
			if i%2 == 0 {
				a = append(a, text)
			} else {
				b = append(b, text)
			}
		})
	})
	span.SetAttributes(
		attribute.Int("fighter_a_cells", len(a)),
		attribute.Int("fighter_b_cells", len(b)),
	)
	return a, b
}

// ListedFighter is a row of a fighter listing page.
type ListedFighter struct {
	First    string
	Last     string
	Nickname string
	URL      string
}

const linksPerFighter = 3

// ParseFighterListing reads one letter of the fighter listing. Each fighter
// row holds three links to the same page: first name, last name and
// nickname (any of which may be empty).
func ParseFighterListing(ctx context.Context, doc *goquery.Document) ([]ListedFighter, error) {
	ctx, span := tracer.Start(ctx, "ParseFighterListing")
	defer span.End()

	anchors := htmlutil.GetAnchors(ctx, doc.Find(blackLinkSelector))
	if len(anchors)%linksPerFighter != 0 {
		return nil, shapeError(span, "fighter listing: %d links is not a multiple of %d", len(anchors), linksPerFighter)
	}

	fighters := make([]ListedFighter, 0, len(anchors)/linksPerFighter)
	for i := 0; i < len(anchors); i += linksPerFighter {
		first, last, nickname := anchors[i], anchors[i+1], anchors[i+2]
		if first.Href != last.Href || first.Href != nickname.Href {
			return nil, shapeError(
				span, "fighter listing: links %d..%d point at different pages (%s, %s, %s)",
				i, i+2, first.Href, last.Href, nickname.Href,
			)
		}
		fighters = append(fighters, ListedFighter{
			First:    first.Name,
			Last:     last.Name,
			Nickname: nickname.Name,
			URL:      first.Href,
		})
	}
	span.SetAttributes(attribute.Int("fighters", len(fighters)))
	return fighters, nil
}

// ParseFighterTott reads a fighter's page as labeled fragments:
// "Fighter:<name>" followed by one "<label>:<value>" per tale of the tape
// entry, in page order.
func ParseFighterTott(ctx context.Context, doc *goquery.Document) ([]string, error) {
	_, span := tracer.Start(ctx, "ParseFighterTott")
	defer span.End()

	name := doc.Find(fighterNameSelector).First()
	if name.Length() == 0 {
		return nil, shapeError(span, "fighter page: missing %s", fighterNameSelector)
	}
	box := doc.Find(fighterBoxSelector).First()
	if box.Length() == 0 {
		return nil, shapeError(span, "fighter page: missing %s", fighterBoxSelector)
	}

	fragments := []string{"Fighter:" + name.Text()}
	box.Find("i").Each(func(_ int, s *goquery.Selection) {
		fragments = append(fragments, s.Text()+htmlutil.NextSiblingText(s))
	})
	for i, text := range fragments {
		fragments[i] = textutil.CleanFragment(text)
	}
	return fragments, nil
}

// FighterListingURLs expands the fighter listing base url into one url per
// letter of the alphabet.
func FighterListingURLs(base string) ([]string, error) {
	link, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "parse fighter listing url %q", base)
	}

	urls := make([]string, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		query := link.Query()
		query.Set("char", string(c))
		query.Set("page", "all")
		link.RawQuery = query.Encode()
		urls = append(urls, link.String())
	}
	return urls, nil
}
