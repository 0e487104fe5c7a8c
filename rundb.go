package navkiosk

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunDB is the SQLite-backed catalog of past tiling runs.
type RunDB struct {
	db *sql.DB
}

// OpenRunDB opens the catalog at file, creating it if needed.
func OpenRunDB(file string) (*RunDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS run (id INTEGER PRIMARY KEY NOT NULL, created INTEGER NOT NULL, source TEXT NOT NULL, sha1 TEXT NOT NULL, grid_cols INTEGER NOT NULL, grid_rows INTEGER NOT NULL, tile_size INTEGER NOT NULL, mode TEXT NOT NULL, tiles INTEGER NOT NULL, folder TEXT NOT NULL UNIQUE)"); err != nil {
		db.Close()
		return nil, err
	}

	return &RunDB{
		db: db,
	}, nil
}

func (db *RunDB) Close() error {
	return db.db.Close()
}

// Record inserts the run and fills in its ID.
func (db *RunDB) Record(run *Run) error {
	result, err := db.db.Exec("INSERT INTO run (created, source, sha1, grid_cols, grid_rows, tile_size, mode, tiles, folder) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.Created.Unix(), run.Source, run.SHA1, run.Cols, run.Rows, run.TileSize, run.Mode, run.Tiles, run.Folder)
	if err != nil {
		return err
	}

	run.ID, err = result.LastInsertId()

	return err
}

// List returns all recorded runs, newest first.
func (db *RunDB) List() ([]Run, error) {
	rows, err := db.db.Query("SELECT id, created, source, sha1, grid_cols, grid_rows, tile_size, mode, tiles, folder FROM run ORDER BY created DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created int64
		)
		if err := rows.Scan(&r.ID, &created, &r.Source, &r.SHA1, &r.Cols, &r.Rows, &r.TileSize, &r.Mode, &r.Tiles, &r.Folder); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// FindBySHA1 returns the most recent run of the source with the given
// hash, or nil if it has never been tiled.
func (db *RunDB) FindBySHA1(sha string) (*Run, error) {
	var (
		r       Run
		created int64
	)
	switch err := db.db.QueryRow("SELECT id, created, source, sha1, grid_cols, grid_rows, tile_size, mode, tiles, folder FROM run WHERE sha1 = ? ORDER BY created DESC, id DESC LIMIT 1", sha).Scan(&r.ID, &created, &r.Source, &r.SHA1, &r.Cols, &r.Rows, &r.TileSize, &r.Mode, &r.Tiles, &r.Folder); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		r.Created = time.Unix(created, 0)
		return &r, nil
	default:
		return nil, err
	}
}
