package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

type actionsRepo struct {
	q querier
}

func (r *actionsRepo) CreateAction(ctx context.Context, rec domain.ActionRecord) error {
	env, err := json.Marshal(rec.Envelope)
	if err != nil {
		return fmt.Errorf("sqlite: marshal action envelope: %w", err)
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO action_records (id, identity_id, action_type, score, envelope, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.IdentityID,
		rec.ActionType,
		rec.Score,
		string(env),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: create action: %w", err)
	}
	return nil
}

func (r *actionsRepo) ListActions(ctx context.Context, identityID string, limit int) ([]domain.ActionRecord, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, identity_id, action_type, score, envelope, created_at
		FROM action_records
		WHERE identity_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, identityID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list actions: %w", err)
	}
	defer rows.Close()

	var out []domain.ActionRecord
	for rows.Next() {
		var (
			rec       domain.ActionRecord
			envJSON   string
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.IdentityID, &rec.ActionType, &rec.Score, &envJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan action: %w", err)
		}
		if err := json.Unmarshal([]byte(envJSON), &rec.Envelope); err != nil {
			return nil, fmt.Errorf("sqlite: parse action envelope: %w", err)
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse action created_at: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *actionsRepo) DeleteActionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM action_records WHERE created_at < ?`,
		cutoff.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("sqlite: delete actions: %w", err)
	}
	return res.RowsAffected()
}
