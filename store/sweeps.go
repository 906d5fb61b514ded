// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/cellsweep/sweep"
	"github.com/katalvlaran/cellsweep/train"
)

// SweepSummary is one row of ListSweeps.
type SweepSummary struct {
	ID         string
	Name       string
	Status     sweep.Status
	Mean       float64
	Std        float64
	BestSeed   uint64
	FinishedAt time.Time
}

// SaveSweep writes res with its runs and curves in one transaction,
// replacing any earlier copy with the same ID.
func (s *Store) SaveSweep(ctx context.Context, res *sweep.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode sweep %s: %w", res.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sweeps WHERE sweep_id = ?`, res.ID); err != nil {
		return fmt.Errorf("failed to clear sweep %s: %w", res.ID, err)
	}

	agg := res.Aggregate
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sweeps (sweep_id, name, metric, direction, status, start_seed, stop_seed,
			mean, std, best_seed, successful, failed, started_at, finished_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, res.ID, res.Name, res.Metric, res.Direction.String(), string(res.Status),
		int64(res.StartSeed), int64(res.StopSeed),
		agg.Mean, agg.Std, int64(agg.BestSeed), agg.Successful, agg.Failed,
		res.StartedAt, res.FinishedAt, payload)
	if err != nil {
		return fmt.Errorf("failed to insert sweep %s: %w", res.ID, err)
	}

	for _, r := range res.Runs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO runs (sweep_id, seed, status, final_metric, best_metric, best_epoch,
				early_stop_epoch, epochs_run, final_lr, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, res.ID, int64(r.Seed), string(r.Status), r.FinalMetric, r.BestMetric, r.BestEpoch,
			r.EarlyStopEpoch, r.EpochsRun, r.FinalLR, nullable(r.Error))
		if err != nil {
			return fmt.Errorf("failed to insert run %s/%d: %w", res.ID, r.Seed, err)
		}
		for _, p := range r.Curve {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO curves (sweep_id, seed, epoch, train, eval, lr) VALUES (?, ?, ?, ?, ?, ?)
			`, res.ID, int64(r.Seed), p.Epoch, p.Train, p.Eval, p.LR)
			if err != nil {
				return fmt.Errorf("failed to insert curve point %s/%d@%d: %w", res.ID, r.Seed, p.Epoch, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sweep %s: %w", res.ID, err)
	}

	return nil
}

// LoadSweep decodes the stored result of sweep id. Errors are not persisted;
// per-run error text survives in Runs.
func (s *Store) LoadSweep(ctx context.Context, id string) (*sweep.Result, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM sweeps WHERE sweep_id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sweep %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load sweep %s: %w", id, err)
	}

	var res sweep.Result
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("failed to decode sweep %s: %w", id, err)
	}

	return &res, nil
}

// ListSweeps returns stored sweeps, most recently finished first.
func (s *Store) ListSweeps(ctx context.Context) ([]SweepSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sweep_id, name, status, mean, std, best_seed, finished_at
		FROM sweeps ORDER BY finished_at DESC, sweep_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sweeps: %w", err)
	}
	defer rows.Close()

	var out []SweepSummary
	for rows.Next() {
		var (
			sum    SweepSummary
			status string
			best   int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &status, &sum.Mean, &sum.Std, &best, &sum.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sweep: %w", err)
		}
		sum.Status, sum.BestSeed = sweep.Status(status), uint64(best)
		out = append(out, sum)
	}

	return out, rows.Err()
}

// Runs reads the run table of a sweep, with curves, ordered by seed.
func (s *Store) Runs(ctx context.Context, sweepID string) ([]train.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seed, status, final_metric, best_metric, best_epoch, early_stop_epoch, epochs_run, final_lr, error
		FROM runs WHERE sweep_id = ? ORDER BY seed
	`, sweepID)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []train.RunRecord
	for rows.Next() {
		var (
			r      train.RunRecord
			seed   int64
			status string
			msg    sql.NullString
		)
		if err := rows.Scan(&seed, &status, &r.FinalMetric, &r.BestMetric, &r.BestEpoch,
			&r.EarlyStopEpoch, &r.EpochsRun, &r.FinalLR, &msg); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Seed, r.Status, r.Error = uint64(seed), train.Status(status), msg.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		curve, err := s.curve(ctx, sweepID, out[i].Seed)
		if err != nil {
			return nil, err
		}
		out[i].Curve = curve
	}

	return out, nil
}

func (s *Store) curve(ctx context.Context, sweepID string, seed uint64) ([]train.CurvePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT epoch, train, eval, lr FROM curves WHERE sweep_id = ? AND seed = ? ORDER BY epoch
	`, sweepID, int64(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to query curve: %w", err)
	}
	defer rows.Close()

	var out []train.CurvePoint
	for rows.Next() {
		var p train.CurvePoint
		if err := rows.Scan(&p.Epoch, &p.Train, &p.Eval, &p.LR); err != nil {
			return nil, fmt.Errorf("failed to scan curve point: %w", err)
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}
