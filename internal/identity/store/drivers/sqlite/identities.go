package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
	"github.com/Soulfra/agent-router-sub005/internal/identity/store"
)

type identitiesRepo struct {
	q querier
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, rec domain.Record) error {
	meta, err := json.Marshal(orEmptyMeta(rec.Metadata))
	if err != nil {
		return fmt.Errorf("sqlite: marshal identity metadata: %w", err)
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO identities (
			id, public_key, sealed_seed, created_at,
			commits, verified_actions, first_action, last_action,
			totp_secret, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.PublicKey,
		rec.SealedSeed,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.Reputation.Commits,
		rec.Reputation.VerifiedActions,
		nullableTime(rec.Reputation.FirstAction),
		nullableTime(rec.Reputation.LastAction),
		rec.TOTPSecret,
		string(meta),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("sqlite: create identity: %w", err)
	}
	return nil
}

func (r *identitiesRepo) GetIdentity(ctx context.Context, id string) (domain.Record, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, public_key, sealed_seed, created_at,
		       commits, verified_actions, first_action, last_action,
		       totp_secret, metadata
		FROM identities WHERE id = ?`, id)

	var (
		rec          domain.Record
		createdAt    string
		firstAction  sql.NullString
		lastAction   sql.NullString
		metadataJSON string
	)
	err := row.Scan(
		&rec.ID, &rec.PublicKey, &rec.SealedSeed, &createdAt,
		&rec.Reputation.Commits, &rec.Reputation.VerifiedActions,
		&firstAction, &lastAction,
		&rec.TOTPSecret, &metadataJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("sqlite: get identity: %w", err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.Record{}, fmt.Errorf("sqlite: parse identity created_at: %w", err)
	}
	rec.Reputation.FirstAction, err = parseNullableTime(firstAction)
	if err != nil {
		return domain.Record{}, fmt.Errorf("sqlite: parse first_action: %w", err)
	}
	rec.Reputation.LastAction, err = parseNullableTime(lastAction)
	if err != nil {
		return domain.Record{}, fmt.Errorf("sqlite: parse last_action: %w", err)
	}
	if err := json.Unmarshal([]byte(metadataJSON), &rec.Metadata); err != nil {
		return domain.Record{}, fmt.Errorf("sqlite: parse identity metadata: %w", err)
	}

	return rec, nil
}

func (r *identitiesRepo) ApplyAction(ctx context.Context, id string, commitsDelta int, at time.Time) error {
	ts := at.UTC().Format(time.RFC3339Nano)
	res, err := r.q.ExecContext(ctx, `
		UPDATE identities
		SET verified_actions = verified_actions + 1,
		    commits = commits + ?,
		    first_action = COALESCE(first_action, ?),
		    last_action = ?
		WHERE id = ?`,
		commitsDelta,
		ts,
		ts,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: apply action: %w", err)
	}
	return requireRowAffected(res)
}

func (r *identitiesRepo) SetTOTPSecret(ctx context.Context, id, secret string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE identities SET totp_secret = ? WHERE id = ?`, secret, id)
	if err != nil {
		return fmt.Errorf("sqlite: set totp secret: %w", err)
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func orEmptyMeta(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
