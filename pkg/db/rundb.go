// Package db keeps a small SQLite manifest of BLAST runs so past
// batches can be inspected after the fact.
package db

import (
	"context"
	"database/sql"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS gene_runs (
	run_id     TEXT NOT NULL,
	gene_name  TEXT NOT NULL,
	mode       TEXT NOT NULL,
	db_name    TEXT NOT NULL,
	cached     INTEGER NOT NULL,
	loci       INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);`

// GeneRun is one manifest row: one gene processed during one batch run.
type GeneRun struct {
	RunID     string
	GeneName  string
	Mode      string
	Database  string
	Cached    bool
	Loci      int
	Error     string
	CreatedAt time.Time
}

// RunDB wraps the manifest database.
type RunDB struct {
	conn *sql.DB
}

// OpenRunDB opens (creating if needed) the manifest at path.
func OpenRunDB(path string) (*RunDB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, err
	}
	return &RunDB{conn: conn}, nil
}

// Record inserts one gene-run row.
func (r *RunDB) Record(ctx context.Context, entry GeneRun) error {

	qstring := `insert into gene_runs
		(run_id, gene_name, mode, db_name, cached, loci, error, created_at)
		values (?, ?, ?, ?, ?, ?, ?, ?);`

	stm, err := r.conn.PrepareContext(ctx, qstring)
	if err != nil {
		return err
	}
	defer stm.Close()

	cached := 0
	if entry.Cached {
		cached = 1
	}

	_, err = stm.ExecContext(ctx, entry.RunID, entry.GeneName, entry.Mode,
		entry.Database, cached, entry.Loci, entry.Error, entry.CreatedAt.Unix())
	return err
}

// GenesForRun returns every row recorded under runID, ordered by gene name.
func (r *RunDB) GenesForRun(ctx context.Context, runID string) ([]GeneRun, error) {

	qstring := `select run_id, gene_name, mode, db_name, cached, loci, error, created_at
		from gene_runs where run_id == ? order by gene_name;`

	stm, err := r.conn.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GeneRun
	for rows.Next() {
		var g GeneRun
		var cached int
		var created int64
		if err := rows.Scan(&g.RunID, &g.GeneName, &g.Mode, &g.Database,
			&cached, &g.Loci, &g.Error, &created); err != nil {
			return nil, err
		}
		g.Cached = cached != 0
		g.CreatedAt = time.Unix(created, 0)
		results = append(results, g)
	}
	return results, rows.Err()
}

// AllRuns returns every recorded row, newest first.
func (r *RunDB) AllRuns(ctx context.Context) ([]GeneRun, error) {

	qstring := `select run_id, gene_name, mode, db_name, cached, loci, error, created_at
		from gene_runs order by created_at desc, gene_name;`

	stm, err := r.conn.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GeneRun
	for rows.Next() {
		var g GeneRun
		var cached int
		var created int64
		if err := rows.Scan(&g.RunID, &g.GeneName, &g.Mode, &g.Database,
			&cached, &g.Loci, &g.Error, &created); err != nil {
			return nil, err
		}
		g.Cached = cached != 0
		g.CreatedAt = time.Unix(created, 0)
		results = append(results, g)
	}
	return results, rows.Err()
}

func (r *RunDB) Close() error {
	return r.conn.Close()
}
