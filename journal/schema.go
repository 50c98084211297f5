// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	months INTEGER NOT NULL,
	families TEXT NOT NULL,
	indicator TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	params TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS band_points (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	family TEXT NOT NULL,
	time DATETIME NOT NULL,
	close REAL NOT NULL,
	upper REAL,
	middle REAL,
	lower REAL,
	percent_b REAL,
	band_width REAL,
	PRIMARY KEY (run_id, family, time)
);

CREATE INDEX IF NOT EXISTS idx_runs_symbol ON runs(symbol, created);
`
