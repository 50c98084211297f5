package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `run_id, created, symbol, months, families, indicator, row_count, start_time, end_time, params`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r        Run
		families string
		params   string
	)
	err := s.Scan(
		&r.RunID,
		&r.Created,
		&r.Symbol,
		&r.Months,
		&families,
		&r.Indicator,
		&r.Rows,
		&r.Start,
		&r.End,
		&params,
	)
	if err != nil {
		return Run{}, err
	}
	r.Families = splitFamilies(families)
	r.Params = []byte(params)
	return r, nil
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(ctx context.Context, runID string) (Run, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE run_id = ?`, runID)

	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns runs newest first, optionally filtered by symbol.
func (j *SQLite) ListRuns(ctx context.Context, symbol string) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE ? = '' OR symbol = ?
		ORDER BY created DESC, run_id DESC`, symbol, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPoints returns a run's points in time order, optionally limited to
// one family.
func (j *SQLite) ListPoints(ctx context.Context, runID, family string) ([]Point, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, family, time, close, upper, middle, lower, percent_b, band_width
		FROM band_points
		WHERE run_id = ? AND (? = '' OR family = ?)
		ORDER BY family ASC, time ASC`, runID, family, family)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Point
	for rows.Next() {
		var (
			p                    Point
			upper, middle, lower sql.NullFloat64
			pctb, bw             sql.NullFloat64
		)
		if err := rows.Scan(
			&p.RunID,
			&p.Family,
			&p.Time,
			&p.Close,
			&upper,
			&middle,
			&lower,
			&pctb,
			&bw,
		); err != nil {
			return nil, err
		}
		p.Upper = fromNullable(upper)
		p.Middle = fromNullable(middle)
		p.Lower = fromNullable(lower)
		p.PercentB = fromNullable(pctb)
		p.BandWidth = fromNullable(bw)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
