package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/TinaMuuto/powerpoint-EY/internal"
)

// DB persists run reports: one row per generation run, one per input
// item outcome. Resolved records themselves are never stored; they
// live only for the duration of a run.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  items INTEGER NOT NULL,
  rendered INTEGER NOT NULL,
  skipped INTEGER NOT NULL,
  warnings INTEGER NOT NULL,
  startedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS run_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  lineNo INTEGER NOT NULL,
  itemNo TEXT NOT NULL,
  source TEXT NOT NULL,
  status TEXT NOT NULL,
  slideIndex INTEGER,
  texts INTEGER NOT NULL,
  links INTEGER NOT NULL,
  images INTEGER NOT NULL,
  warningsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(runId) REFERENCES runs(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(summary internal.RunSummary, outcomes []internal.ItemOutcome) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
INSERT INTO runs (traceId, items, rendered, skipped, warnings)
VALUES (?, ?, ?, ?, ?)
`, summary.TraceID, summary.Items, summary.Rendered, summary.Skipped, summary.Warnings)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO run_items (runId, lineNo, itemNo, source, status, slideIndex, texts, links, images, warningsJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, o := range outcomes {
		warningsJSON, _ := json.Marshal(o.Warnings)
		var slideIndex any
		if o.SlideIndex >= 0 {
			slideIndex = o.SlideIndex
		}
		if _, err := stmt.Exec(
			runID, o.LineNo, o.ItemNo, string(o.Source), string(o.Status),
			slideIndex, o.Texts, o.Links, o.Images, string(warningsJSON),
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

func (d *DB) GetRun(runID int64) (*internal.RunRow, error) {
	var row internal.RunRow
	err := d.conn.QueryRow(`
SELECT id, traceId, startedAt, items, rendered, skipped, warnings
FROM runs WHERE id = ?
`, runID).Scan(&row.ID, &row.TraceID, &row.StartedAt, &row.Items, &row.Rendered, &row.Skipped, &row.Warnings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) GetRunReport(runID int64) ([]internal.RunReportRow, error) {
	rows, err := d.conn.Query(`
SELECT lineNo, itemNo, source, status, slideIndex, texts, links, images, warningsJson
FROM run_items WHERE runId = ? ORDER BY lineNo ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunReportRow
	for rows.Next() {
		var row internal.RunReportRow
		var slideIndex sql.NullInt64
		var warningsJSON string
		if err := rows.Scan(
			&row.LineNo, &row.ItemNo, &row.Source, &row.Status,
			&slideIndex, &row.Texts, &row.Links, &row.Images, &warningsJSON,
		); err != nil {
			return nil, err
		}
		if slideIndex.Valid {
			idx := int(slideIndex.Int64)
			row.SlideIndex = &idx
		}
		_ = json.Unmarshal([]byte(warningsJSON), &row.Warnings)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value, updatedAt)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updatedAt=CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
