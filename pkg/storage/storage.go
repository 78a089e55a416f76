// Package storage is the SQLite store behind the scrape job. Scraped rows
// from different sources are merged into one listings table; the render job
// never touches it and consumes the exported CSV instead.
package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gmpwatch/gmpwatch/pkg/listing"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS listings (
  id              INTEGER PRIMARY KEY,
  name            TEXT NOT NULL,
  name_normalized TEXT NOT NULL,
  gmp             TEXT,
  date_text       TEXT,
  price           TEXT,
  gain            TEXT,
  type            TEXT,
  status          TEXT,
  source          TEXT NOT NULL,
  first_seen_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_listings_name ON listings(name_normalized);
CREATE TABLE IF NOT EXISTS listing_changes (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  name        TEXT NOT NULL,
  source      TEXT NOT NULL,
  change_type TEXT NOT NULL CHECK (change_type IN ('added','updated'))
);
CREATE INDEX IF NOT EXISTS idx_changes_time ON listing_changes(occurred_at);
	`); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Change captures one merge event, for printing and auditing.
type Change struct {
	OccurredAt time.Time
	Name       string
	Source     string
	ChangeType string // added | updated
}

// MergeListings folds scraped records into the listings table. A record
// matches an existing row when the normalized names are equal or one
// contains the other; spreadsheet sources truncate and decorate names
// ("Acme Industries" vs "Acme Industries IPO"), so exact identity is too
// strict. Matched rows are updated in place, everything else is inserted.
func (d *DB) MergeListings(ctx context.Context, source string, recs []listing.Record) ([]Change, error) {
	now := time.Now().UTC()

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	type existing struct {
		id                                  int64
		normalized                          string
		gmp, date, price, gain, typ, status string
	}
	rows, err := tx.QueryContext(ctx, `SELECT id, name_normalized,
		COALESCE(gmp,''), COALESCE(date_text,''), COALESCE(price,''),
		COALESCE(gain,''), COALESCE(type,''), COALESCE(status,'')
		FROM listings`)
	if err != nil {
		return nil, err
	}
	var current []existing
	for rows.Next() {
		var e existing
		if err = rows.Scan(&e.id, &e.normalized, &e.gmp, &e.date, &e.price, &e.gain, &e.typ, &e.status); err != nil {
			rows.Close()
			return nil, err
		}
		current = append(current, e)
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}

	var changes []Change
	for _, rec := range recs {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}
		normalized := normalizeName(name)

		var match *existing
		for i := range current {
			if namesMatch(current[i].normalized, normalized) {
				match = &current[i]
				break
			}
		}

		if match == nil {
			var res sql.Result
			res, err = tx.ExecContext(ctx, `INSERT INTO listings(name, name_normalized, gmp, date_text, price, gain, type, status, source)
				VALUES(?,?,?,?,?,?,?,?,?)`,
				name, normalized, rec.GMP, rec.Date, rec.Price, rec.Gain, rec.Type, rec.Status, source)
			if err != nil {
				return nil, err
			}
			id, _ := res.LastInsertId()
			current = append(current, existing{id: id, normalized: normalized, gmp: rec.GMP, date: rec.Date, price: rec.Price, gain: rec.Gain, typ: rec.Type, status: rec.Status})
			if _, err = tx.ExecContext(ctx, `INSERT INTO listing_changes(name, source, change_type) VALUES(?,?,'added')`, name, source); err != nil {
				return nil, err
			}
			changes = append(changes, Change{OccurredAt: now, Name: name, Source: source, ChangeType: "added"})
			continue
		}

		if match.gmp == rec.GMP && match.date == rec.Date && match.price == rec.Price &&
			match.gain == rec.Gain && match.typ == rec.Type && match.status == rec.Status {
			if _, err = tx.ExecContext(ctx, `UPDATE listings SET last_seen_at = CURRENT_TIMESTAMP WHERE id = ?`, match.id); err != nil {
				return nil, err
			}
			continue
		}

		if _, err = tx.ExecContext(ctx, `UPDATE listings SET gmp = ?, date_text = ?, price = ?, gain = ?, type = ?, status = ?, source = ?, last_seen_at = CURRENT_TIMESTAMP WHERE id = ?`,
			rec.GMP, rec.Date, rec.Price, rec.Gain, rec.Type, rec.Status, source, match.id); err != nil {
			return nil, err
		}
		match.gmp, match.date, match.price, match.gain, match.typ, match.status = rec.GMP, rec.Date, rec.Price, rec.Gain, rec.Type, rec.Status
		if _, err = tx.ExecContext(ctx, `INSERT INTO listing_changes(name, source, change_type) VALUES(?,?,'updated')`, name, source); err != nil {
			return nil, err
		}
		changes = append(changes, Change{OccurredAt: now, Name: name, Source: source, ChangeType: "updated"})
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return changes, nil
}

// ListRecords returns every stored listing as a record, newest first, for
// the CSV export.
func (d *DB) ListRecords(ctx context.Context) ([]listing.Record, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT name,
		COALESCE(gmp,''), COALESCE(date_text,''), COALESCE(price,''),
		COALESCE(gain,''), COALESCE(type,''), COALESCE(status,'')
		FROM listings ORDER BY last_seen_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []listing.Record
	for rows.Next() {
		var r listing.Record
		if err := rows.Scan(&r.Name, &r.GMP, &r.Date, &r.Price, &r.Gain, &r.Type, &r.Status); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// ListRecentChanges returns the most recent N merge changes.
func (d *DB) ListRecentChanges(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 50
	}
	q := "SELECT occurred_at, name, source, change_type FROM listing_changes ORDER BY occurred_at DESC LIMIT ?"
	rows, err := d.sql.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := []Change{}
	for rows.Next() {
		var c Change
		var occurredAtStr string
		if err := rows.Scan(&occurredAtStr, &c.Name, &c.Source, &c.ChangeType); err != nil {
			return nil, err
		}
		// Parse SQLite CURRENT_TIMESTAMP format
		// Try "2006-01-02 15:04:05" then RFC3339
		if t, perr := time.Parse("2006-01-02 15:04:05", occurredAtStr); perr == nil {
			c.OccurredAt = t
		} else if t2, perr2 := time.Parse(time.RFC3339, occurredAtStr); perr2 == nil {
			c.OccurredAt = t2
		} else {
			c.OccurredAt = time.Time{}
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return changes, nil
}

// normalizeName lowercases and collapses whitespace for identity matching.
func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// namesMatch treats equal names or a substring either way as the same
// listing.
func namesMatch(a, b string) bool {
	if a == b {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
