package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	devenv "ufcstats/dev/env"
	"ufcstats/internal/config"
	"ufcstats/internal/db"

	"gopkg.in/yaml.v3"
)

// WriteDevConfig writes a config that keeps every store under <dev_state>/data
// and returns its path. An existing config is left alone.
func WriteDevConfig() (string, error) {
	path, err := devenv.ResolvePath(filepath.Join("<dev_state>", "scrape_ufc_stats_config.yaml"))
	if err != nil {
		return "", err
	}
	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("config already created at", path)
		return path, nil
	}

	cfg := config.Default()
	for _, p := range []*string{
		&cfg.EventDetailsFile,
		&cfg.FightDetailsFile,
		&cfg.FightResultsFile,
		&cfg.FightStatsFile,
		&cfg.FighterDetailsFile,
		&cfg.FighterTottFile,
		&cfg.Database,
	} {
		*p = filepath.Join("<dev_state>", "data", *p)
	}

	contents, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	fmt.Println("creating config at", path)
	return path, os.WriteFile(path, contents, 0644)
}

func CreateDevDB(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	fmt.Println("creating database at", cfg.Database)
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	return database.Close()
}
