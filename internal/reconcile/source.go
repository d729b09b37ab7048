package reconcile

import (
	"context"
	"log/slog"
	"strings"
	"ufcstats/internal/config"
	"ufcstats/internal/records"
	"ufcstats/lib/htmlutil"
	"ufcstats/lib/restyutil"
	"ufcstats/lib/scrapers/ufcstats"

	"github.com/antzucaro/matchr"
	"github.com/cockroachdb/errors"
)

// below this the listing and the event page are probably naming different
// events, not the same event spelled differently.
const titleSimilarityThreshold = 0.85

// Source is where a run gets fresh records from.
type Source interface {
	EventListing(ctx context.Context) ([]records.Event, error)
	// EventCard returns the fights of an event, in card order.
	EventCard(ctx context.Context, event records.Event) ([]records.Fight, error)
	// Fight returns the result of a fight and the per round stats of both
	// fighters.
	Fight(ctx context.Context, fight records.Fight) (records.FightResult, []records.FightStat, error)
	// FighterListing returns every listed fighter, across all letters.
	FighterListing(ctx context.Context) ([]records.FighterDetail, error)
	FighterTott(ctx context.Context, fighter records.FighterDetail) (records.FighterTott, error)
}

// ScraperSource reads records off ufcstats.com.
type ScraperSource struct {
	client            *ufcstats.Client
	eventsURL         string
	fighterListingURL string
	layout            records.StatLayout
}

// NewScraperSource builds a source from the http, seed url and stat column
// settings of `cfg`. `output` may be nil.
func NewScraperSource(cfg config.Config, output restyutil.InstrumentOutput) (*ScraperSource, error) {
	layout, err := records.NewStatLayout(cfg.TotalsColumns, cfg.SignificantStrikesColumns)
	if err != nil {
		return nil, errors.Wrap(err, "stat columns")
	}
	return &ScraperSource{
		client: ufcstats.NewClient(ufcstats.Options{
			UserAgent:        cfg.HTTP.UserAgent,
			Timeout:          cfg.HTTP.Timeout(),
			CloudflareBypass: cfg.HTTP.CloudflareBypass,
			Output:           output,
		}),
		eventsURL:         cfg.CompletedEventsURL,
		fighterListingURL: cfg.FighterListingURL,
		layout:            layout,
	}, nil
}

func (s *ScraperSource) EventListing(ctx context.Context) ([]records.Event, error) {
	doc, err := s.client.Fetch(ctx, s.eventsURL)
	if err != nil {
		return nil, err
	}
	listed, err := ufcstats.ParseEventListing(ctx, doc)
	if err != nil {
		return nil, err
	}
	events := make([]records.Event, len(listed))
	for i, e := range listed {
		events[i] = records.Event{
			Name:     e.Name,
			URL:      e.URL,
			Date:     e.Date,
			Location: e.Location,
		}
	}
	return events, nil
}

func (s *ScraperSource) EventCard(ctx context.Context, event records.Event) ([]records.Fight, error) {
	doc, err := s.client.Fetch(ctx, event.URL)
	if err != nil {
		return nil, err
	}
	card, err := ufcstats.ParseEventCard(ctx, doc)
	if err != nil {
		return nil, err
	}
	// rows are stamped with the listing name, the delta and the purge key on it.
	title := htmlutil.NormalizeText(card.Event)
	if title != event.Name {
		similarity := matchr.JaroWinkler(strings.ToLower(title), strings.ToLower(event.Name), false)
		level := slog.LevelDebug
		if similarity < titleSimilarityThreshold {
			level = slog.LevelWarn
		}
		slog.Log(
			ctx, level, "event page title differs from listing",
			"listing", event.Name,
			"page", card.Event,
			"similarity", similarity,
		)
	}

	fights := make([]records.Fight, len(card.Bouts))
	for i, b := range card.Bouts {
		fights[i] = records.Fight{
			Event: event.Name,
			Bout:  records.BoutName(b.FighterA, b.FighterB),
			URL:   b.URL,
		}
	}
	return fights, nil
}

func (s *ScraperSource) Fight(ctx context.Context, fight records.Fight) (records.FightResult, []records.FightStat, error) {
	doc, err := s.client.Fetch(ctx, fight.URL)
	if err != nil {
		return records.FightResult{}, nil, err
	}

	fragments, err := ufcstats.ParseFightFragments(ctx, doc, fight.URL)
	if err != nil {
		return records.FightResult{}, nil, err
	}
	result, err := records.AssembleFightResult(fragments)
	if err != nil {
		return records.FightResult{}, nil, errors.Wrapf(err, "fight %s", fight.URL)
	}

	cellsA, cellsB := ufcstats.ParseFightStats(ctx, doc)
	rowsA, err := s.layout.BuildStatRows(records.GroupStatBlocks(cellsA))
	if err != nil {
		return records.FightResult{}, nil, errors.Wrapf(err, "fight %s: first fighter", fight.URL)
	}
	rowsB, err := s.layout.BuildStatRows(records.GroupStatBlocks(cellsB))
	if err != nil {
		return records.FightResult{}, nil, errors.Wrapf(err, "fight %s: second fighter", fight.URL)
	}
	result.Event = fight.Event
	stats := records.CombineFighterStats(
		fight.Event,
		strings.TrimSpace(fragments[1]),
		strings.TrimSpace(fragments[2]),
		rowsA, rowsB,
	)
	return result, stats, nil
}

func (s *ScraperSource) FighterListing(ctx context.Context) ([]records.FighterDetail, error) {
	urls, err := ufcstats.FighterListingURLs(s.fighterListingURL)
	if err != nil {
		return nil, err
	}

	var fighters []records.FighterDetail
	for _, link := range urls {
		doc, err := s.client.Fetch(ctx, link)
		if err != nil {
			return nil, err
		}
		listed, err := ufcstats.ParseFighterListing(ctx, doc)
		if err != nil {
			return nil, errors.Wrapf(err, "fighter listing %s", link)
		}
		for _, f := range listed {
			fighters = append(fighters, records.FighterDetail{
				First:    f.First,
				Last:     f.Last,
				Nickname: f.Nickname,
				URL:      f.URL,
			})
		}
	}
	return fighters, nil
}

func (s *ScraperSource) FighterTott(ctx context.Context, fighter records.FighterDetail) (records.FighterTott, error) {
	doc, err := s.client.Fetch(ctx, fighter.URL)
	if err != nil {
		return records.FighterTott{}, err
	}
	fragments, err := ufcstats.ParseFighterTott(ctx, doc)
	if err != nil {
		return records.FighterTott{}, errors.Wrapf(err, "fighter %s", fighter.URL)
	}
	tott, err := records.AssembleFighterTott(fragments, fighter.URL)
	if err != nil {
		return records.FighterTott{}, errors.Wrapf(err, "fighter %s", fighter.URL)
	}
	return tott, nil
}
