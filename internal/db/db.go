// Package db is the relational copy of the csv stores.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"slices"
	"ufcstats/internal/records"
	"ufcstats/pkg/migrations"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var Schema string

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
	sqlx.BindDriver("libsql", sqlx.QUESTION)
}

// Tables in the order they have to be loaded in.
var Tables = []string{
	"event_details",
	"fight_details",
	"fight_results",
	"fight_stats",
	"fighter_details",
	"fighter_stats",
}

// Open opens the database at `dsn` (a sqlite path or a libsql url) and
// creates any missing table.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	database, err := migrations.OpenAndMigrateDB(ctx, Schema, dsn)
	if err != nil {
		return nil, err
	}
	driver := "sqlite"
	if migrations.IsRemote(dsn) {
		driver = "libsql"
	}
	return sqlx.NewDb(database, driver), nil
}

type DBTX interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) insert(ctx context.Context, query string, arg any) (bool, error) {
	res, err := q.db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

const insertEvent = `INSERT OR IGNORE INTO event_details (event, url, date, location)
VALUES (:event, :url, :date, :location)`

func (q *Queries) InsertEvent(ctx context.Context, e records.Event) (bool, error) {
	return q.insert(ctx, insertEvent, e)
}

const insertFight = `INSERT OR IGNORE INTO fight_details (event, bout, url)
VALUES (:event, :bout, :url)`

func (q *Queries) InsertFight(ctx context.Context, f records.Fight) (bool, error) {
	return q.insert(ctx, insertFight, f)
}

const insertFightResult = `INSERT OR IGNORE INTO fight_results (
    event, bout, outcome, weightclass, method, round, time, time_format, referee, details, url
) VALUES (
    :event, :bout, :outcome, :weightclass, :method, :round, :time, :time_format, :referee, :details, :url
)`

func (q *Queries) InsertFightResult(ctx context.Context, r records.FightResult) (bool, error) {
	return q.insert(ctx, insertFightResult, r)
}

const insertFightStat = `INSERT OR IGNORE INTO fight_stats (
    event, bout, round, fighter, kd, sig_str, sig_str_pct, total_str, td, td_pct,
    sub_att, rev, ctrl, head, body, leg, distance, clinch, ground
) VALUES (
    :event, :bout, :round, :fighter, :kd, :sig_str, :sig_str_pct, :total_str, :td, :td_pct,
    :sub_att, :rev, :ctrl, :head, :body, :leg, :distance, :clinch, :ground
)`

func (q *Queries) InsertFightStat(ctx context.Context, s records.FightStat) (bool, error) {
	return q.insert(ctx, insertFightStat, s)
}

const insertFighterDetail = `INSERT OR IGNORE INTO fighter_details (first, last, nickname, url)
VALUES (:first, :last, :nickname, :url)`

func (q *Queries) InsertFighterDetail(ctx context.Context, f records.FighterDetail) (bool, error) {
	return q.insert(ctx, insertFighterDetail, f)
}

const insertFighterTott = `INSERT OR IGNORE INTO fighter_stats (fighter, height, weight, reach, stance, dob, url)
VALUES (:fighter, :height, :weight, :reach, :stance, :dob, :url)`

func (q *Queries) InsertFighterTott(ctx context.Context, t records.FighterTott) (bool, error) {
	return q.insert(ctx, insertFighterTott, t)
}

// CountRows returns the number of rows in `table`, which must be one of
// Tables.
func (q *Queries) CountRows(ctx context.Context, table string) (int, error) {
	if !slices.Contains(Tables, table) {
		return 0, errors.Newf("unknown table %q", table)
	}
	var count int
	err := q.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table)
	return count, err
}
