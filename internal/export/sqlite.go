package export

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"comspect/internal/presentation"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS scan_info (
	scanned_at   TEXT NOT NULL,
	views        TEXT NOT NULL,
	keys_visited INTEGER NOT NULL,
	keys_failed  INTEGER NOT NULL,
	total_unique INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS com_objects (
	clsid        TEXT PRIMARY KEY,
	prog_id      TEXT,
	description  TEXT,
	usability    TEXT NOT NULL,
	source_views TEXT NOT NULL
);
DELETE FROM scan_info;
DELETE FROM com_objects;
`

// SQLite writes the snapshot to a sqlite database at path, replacing any
// previous snapshot so the file always holds exactly one scan.
func SQLite(path string, s Snapshot) error {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("creating snapshot schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(
		`INSERT INTO scan_info (scanned_at, views, keys_visited, keys_failed, total_unique)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ScannedAt.Format(time.RFC3339), strings.Join(s.Views, ","),
		s.KeysVisited, s.KeysFailed, s.TotalUnique,
	); err != nil {
		return fmt.Errorf("inserting scan info: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO com_objects (clsid, prog_id, description, usability, source_views)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range presentation.SortForDisplay(s.Objects) {
		progID := sql.NullString{String: o.ProgID, Valid: o.HasProgID()}
		desc := sql.NullString{String: o.Description, Valid: o.HasDescription()}
		if _, err := stmt.Exec(o.CLSID, progID, desc, o.Level.String(), o.Views.String()); err != nil {
			return fmt.Errorf("inserting %s: %w", o.CLSID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}
