package output

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Zuo-Peng/clocktsv/internal/parse"
	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = DELETE;
PRAGMA synchronous = NORMAL;

CREATE TABLE spans (
    seq           INTEGER PRIMARY KEY,
    activity      TEXT NOT NULL,
    activity_type TEXT NOT NULL,
    start_ts      TEXT NOT NULL,
    end_ts        TEXT NOT NULL
);

CREATE INDEX spans_activity ON spans(activity, start_ts);
`

// SQLiteWriter stores rows in a fresh database file. Rows become visible
// when Close commits.
type SQLiteWriter struct {
	db   *sql.DB
	tx   *sql.Tx
	stmt *sql.Stmt
	seq  int
}

func OpenSQLite(dbPath string) (*SQLiteWriter, error) {
	// sql.Open is lazy; fail up front like os.Create does
	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		return nil, err
	}
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove old db: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO spans (seq, activity, activity_type, start_ts, end_ts)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, err
	}

	return &SQLiteWriter{db: db, tx: tx, stmt: stmt}, nil
}

func (s *SQLiteWriter) Write(row parse.Row) error {
	s.seq++
	_, err := s.stmt.Exec(s.seq, row.Activity, row.ActivityType, row.Start, row.End)
	return err
}

func (s *SQLiteWriter) Close() error {
	s.stmt.Close()
	err := s.tx.Commit()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadSQLite returns the rows of a database written by SQLiteWriter in
// their original order.
func ReadSQLite(dbPath string) ([]parse.Row, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT activity, activity_type, start_ts, end_ts FROM spans ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []parse.Row
	for rows.Next() {
		var r parse.Row
		if err := rows.Scan(&r.Activity, &r.ActivityType, &r.Start, &r.End); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
