package prospects

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. Narrowed to an
// interface so tests can substitute a mock pool.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores prospects in the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("prospects: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// ReplaceForOwner swaps the owner's prospect set inside one transaction, so
// a failure mid-replace never leaves the owner with an empty set.
func (r *PostgresRepository) ReplaceForOwner(ctx context.Context, ownerID string, prospects []Prospect) error {
	if ownerID == "" {
		return ErrMissingOwner
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("prospects: begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM prospects WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("prospects: clear previous set: %w", err)
	}

	const insert = `
		INSERT INTO prospects (id, owner_id, name, title, company, location,
		    linkedin_url, avatar_url, mutual_connections, profile_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11)
	`
	for _, p := range prospects {
		profileData, err := json.Marshal(p.ProfileData)
		if err != nil {
			return fmt.Errorf("prospects: marshal profile data: %w", err)
		}
		if _, err := tx.Exec(ctx, insert,
			p.ID,
			ownerID,
			p.Name,
			p.Title,
			p.Company,
			p.Location,
			p.LinkedInURL,
			p.AvatarURL,
			p.MutualConnections,
			profileData,
			p.CreatedAt,
		); err != nil {
			return fmt.Errorf("prospects: insert failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("prospects: commit replace: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's prospects newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Prospect, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, name, title, company, location,
		       COALESCE(linkedin_url, ''), COALESCE(avatar_url, ''),
		       mutual_connections, profile_data, created_at
		FROM prospects WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("prospects: select failed: %w", err)
	}
	defer rows.Close()

	out := []Prospect{}
	for rows.Next() {
		var p Prospect
		var profileData []byte
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Title, &p.Company, &p.Location,
			&p.LinkedInURL, &p.AvatarURL, &p.MutualConnections, &profileData, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("prospects: scan failed: %w", err)
		}
		if len(profileData) > 0 {
			_ = json.Unmarshal(profileData, &p.ProfileData)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a single prospect scoped to its owner.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM prospects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("prospects: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProspectNotFound
	}
	return nil
}
