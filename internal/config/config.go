package config

import (
	"log/slog"
	"os"
	"time"
	devenv "ufcstats/dev/env"
	"ufcstats/lib/configutil"

	"dario.cat/mergo"
	"github.com/cockroachdb/errors"
)

type HTTP struct {
	UserAgent        string `json:"user_agent" yaml:"user_agent"`
	TimeoutSeconds   int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	CloudflareBypass bool   `json:"cloudflare_bypass" yaml:"cloudflare_bypass"`
}

func (h HTTP) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// Config is read once at process start and handed to each phase of a run.
// The key names match the scraper's historical yaml config so an existing
// scrape_ufc_stats_config.yaml can be loaded as is.
type Config struct {
	EventDetailsFile   string `json:"event_details_file_name" yaml:"event_details_file_name"`
	FightDetailsFile   string `json:"fight_details_file_name" yaml:"fight_details_file_name"`
	FightResultsFile   string `json:"fight_results_file_name" yaml:"fight_results_file_name"`
	FightStatsFile     string `json:"fight_stats_file_name" yaml:"fight_stats_file_name"`
	FighterDetailsFile string `json:"fighter_details_file_name" yaml:"fighter_details_file_name"`
	FighterTottFile    string `json:"fighter_tott_file_name" yaml:"fighter_tott_file_name"`

	CompletedEventsURL string `json:"completed_events_all_url" yaml:"completed_events_all_url"`
	FighterListingURL  string `json:"fighter_listing_url" yaml:"fighter_listing_url"`

	EventDetailsColumns       []string `json:"event_details_column_names" yaml:"event_details_column_names"`
	FightDetailsColumns       []string `json:"fight_details_column_names" yaml:"fight_details_column_names"`
	FightResultsColumns       []string `json:"fight_results_column_names" yaml:"fight_results_column_names"`
	FightStatsColumns         []string `json:"fight_stats_column_names" yaml:"fight_stats_column_names"`
	TotalsColumns             []string `json:"totals_column_names" yaml:"totals_column_names"`
	SignificantStrikesColumns []string `json:"significant_strikes_column_names" yaml:"significant_strikes_column_names"`
	FighterDetailsColumns     []string `json:"fighter_details_column_names" yaml:"fighter_details_column_names"`
	FighterTottColumns        []string `json:"fighter_tott_column_names" yaml:"fighter_tott_column_names"`

	Database string `json:"database" yaml:"database"`
	HTTP     HTTP   `json:"http" yaml:"http"`
}

func Default() Config {
	return Config{
		EventDetailsFile:   "ufc_event_details.csv",
		FightDetailsFile:   "ufc_fight_details.csv",
		FightResultsFile:   "ufc_fight_results.csv",
		FightStatsFile:     "ufc_fight_stats.csv",
		FighterDetailsFile: "ufc_fighter_details.csv",
		FighterTottFile:    "ufc_fighter_tott.csv",

		CompletedEventsURL: "http://ufcstats.com/statistics/events/completed?page=all",
		FighterListingURL:  "http://ufcstats.com/statistics/fighters?page=all",

		EventDetailsColumns: []string{"EVENT", "URL", "DATE", "LOCATION"},
		FightDetailsColumns: []string{"EVENT", "BOUT", "URL"},
		FightResultsColumns: []string{
			"EVENT", "BOUT", "OUTCOME", "WEIGHTCLASS", "METHOD", "ROUND",
			"TIME", "TIME FORMAT", "REFEREE", "DETAILS", "URL",
		},
		FightStatsColumns: []string{
			"EVENT", "BOUT", "ROUND", "FIGHTER", "KD", "SIG.STR.", "SIG.STR. %",
			"TOTAL STR.", "TD", "TD %", "SUB.ATT", "REV.", "CTRL",
			"HEAD", "BODY", "LEG", "DISTANCE", "CLINCH", "GROUND",
		},
		TotalsColumns: []string{
			"ROUND", "FIGHTER", "KD", "SIG.STR.", "SIG.STR. %", "TOTAL STR.",
			"TD", "TD %", "SUB.ATT", "REV.", "CTRL",
		},
		SignificantStrikesColumns: []string{
			"ROUND", "FIGHTER", "SIG.STR.", "SIG.STR. %",
			"HEAD", "BODY", "LEG", "DISTANCE", "CLINCH", "GROUND",
		},
		FighterDetailsColumns: []string{"FIRST", "LAST", "NICKNAME", "URL"},
		FighterTottColumns:    []string{"FIGHTER", "HEIGHT", "WEIGHT", "REACH", "STANCE", "DOB", "URL"},

		Database: "ufc_database.db",
		HTTP: HTTP{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
			TimeoutSeconds: 60,
		},
	}
}

// Load merges the file at `path` (plus its .local override) over Default().
// A missing file is not an error, the defaults are used instead.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.resolvePaths()
	}

	file, err := configutil.ReadConfig[Config](path)
	if os.IsNotExist(err) {
		slog.Info("config file not found, using defaults", "path", path)
		return cfg, cfg.resolvePaths()
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	err = mergo.Merge(&cfg, file, mergo.WithOverride)
	if err != nil {
		return Config{}, errors.Wrap(err, "merge config")
	}
	return cfg, cfg.resolvePaths()
}

func (c *Config) resolvePaths() error {
	for _, p := range []*string{
		&c.EventDetailsFile,
		&c.FightDetailsFile,
		&c.FightResultsFile,
		&c.FightStatsFile,
		&c.FighterDetailsFile,
		&c.FighterTottFile,
		&c.Database,
	} {
		resolved, err := devenv.ResolvePath(*p)
		if err != nil {
			return errors.Wrapf(err, "resolve %s", *p)
		}
		*p = resolved
	}
	return nil
}
