// Package persistence provides SQLite-based campaign storage: snapshot
// blobs, the intervention log, and archived quarterly reports.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/avolkov/imperium/internal/engine"
	"github.com/avolkov/imperium/internal/events"
)

// ErrNotFound is returned when a requested blob or report does not exist.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite connection for campaign persistence. Snapshot blobs are
// zstd-compressed before they hit disk; everything else is row data.
type DB struct {
	conn *sqlx.DB
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	db := &DB{conn: conn, enc: enc, dec: dec}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.enc.Close()
	db.dec.Close()
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		raw_size INTEGER NOT NULL,
		saved_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS intervention_log (
		id TEXT PRIMARY KEY,
		quarter INTEGER NOT NULL,
		ts TEXT NOT NULL,
		event_id TEXT NOT NULL,
		status TEXT NOT NULL,
		option_id TEXT,
		resolution_mode TEXT,
		note TEXT
	);

	CREATE TABLE IF NOT EXISTS reports (
		quarter INTEGER PRIMARY KEY,
		data TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS campaign_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_interventions_quarter ON intervention_log(quarter);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// WriteBlob stores a named snapshot blob, compressed, replacing any
// previous blob of the same name.
func (db *DB) WriteBlob(name string, data []byte) error {
	packed := db.enc.EncodeAll(data, nil)
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO snapshots (name, data, raw_size) VALUES (?, ?, ?)",
		name, packed, len(data),
	)
	if err != nil {
		return fmt.Errorf("write blob %q: %w", name, err)
	}
	slog.Debug("blob written", "name", name, "raw", len(data), "packed", len(packed))
	return nil
}

// ReadBlob loads and decompresses a named snapshot blob.
func (db *DB) ReadBlob(name string) ([]byte, error) {
	var packed []byte
	err := db.conn.Get(&packed, "SELECT data FROM snapshots WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("blob %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", name, err)
	}
	data, err := db.dec.DecodeAll(packed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress blob %q: %w", name, err)
	}
	return data, nil
}

// AppendIntervention records one settlement log entry. Entry ids are
// deterministic, so re-running a quarter after a crash upserts rather than
// duplicating rows.
func (db *DB) AppendIntervention(e engine.InterventionLogEntry) error {
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO intervention_log
		 (id, quarter, ts, event_id, status, option_id, resolution_mode, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Quarter, e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.EventID, string(e.Status), e.SelectedOptionID, string(e.ResolutionMode), e.Note,
	)
	if err != nil {
		return fmt.Errorf("append intervention %s: %w", e.ID, err)
	}
	return nil
}

// InterventionsForQuarter returns the settlements logged in one quarter.
func (db *DB) InterventionsForQuarter(quarter int) ([]engine.InterventionLogEntry, error) {
	rows, err := db.conn.Query(
		`SELECT id, quarter, ts, event_id, status, option_id, resolution_mode, note
		 FROM intervention_log WHERE quarter = ? ORDER BY id`, quarter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.InterventionLogEntry
	for rows.Next() {
		var e engine.InterventionLogEntry
		var ts, status string
		var optionID, mode, note sql.NullString
		if err := rows.Scan(&e.ID, &e.Quarter, &ts, &e.EventID, &status, &optionID, &mode, &note); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Timestamp = t
		}
		e.Status = events.OutcomeStatus(status)
		e.SelectedOptionID = optionID.String
		e.ResolutionMode = events.ResolutionMode(mode.String)
		e.Note = note.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveReport archives a quarterly report as JSON.
func (db *DB) SaveReport(r engine.QuarterlyReport) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report q%d: %w", r.Quarter, err)
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO reports (quarter, data) VALUES (?, ?)",
		r.Quarter, string(data),
	)
	if err != nil {
		return fmt.Errorf("save report q%d: %w", r.Quarter, err)
	}
	return nil
}

// LoadReport retrieves one archived quarterly report.
func (db *DB) LoadReport(quarter int) (engine.QuarterlyReport, error) {
	var raw string
	err := db.conn.Get(&raw, "SELECT data FROM reports WHERE quarter = ?", quarter)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.QuarterlyReport{}, fmt.Errorf("report q%d: %w", quarter, ErrNotFound)
	}
	if err != nil {
		return engine.QuarterlyReport{}, err
	}
	var r engine.QuarterlyReport
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return engine.QuarterlyReport{}, fmt.Errorf("decode report q%d: %w", quarter, err)
	}
	return r, nil
}

// SaveMeta stores a campaign metadata key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO campaign_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM campaign_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("meta %q: %w", key, ErrNotFound)
	}
	return value, err
}
