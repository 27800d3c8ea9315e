package repositories

import (
	"context"

	"palletdock/internal/models"

	"github.com/jackc/pgx/v5"
)

// ContainerPoolRepository owns the finite set of reusable container ids.
type ContainerPoolRepository interface {
	WithTx(tx pgx.Tx) ContainerPoolRepository
	AllocateNext(ctx context.Context) (*models.ContainerPoolEntry, error)
	Release(ctx context.Context, containerID string) (bool, error)
	Seed(ctx context.Context, containerIDs []string) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]*models.ContainerPoolEntry, error)
	ListOrphanedAssigned(ctx context.Context) ([]string, error)
}

type containerPoolRepo struct {
	db Querier
}

func NewContainerPoolRepo(db Querier) ContainerPoolRepository {
	return &containerPoolRepo{db: db}
}

func (r *containerPoolRepo) WithTx(tx pgx.Tx) ContainerPoolRepository {
	return &containerPoolRepo{db: tx}
}

// AllocateNext claims the lowest-id unassigned entry. The FOR UPDATE lock
// makes concurrent allocators observe mutually exclusive rows; callers must
// run this inside a transaction. Returns pgx.ErrNoRows when the pool is
// exhausted.
func (r *containerPoolRepo) AllocateNext(ctx context.Context) (*models.ContainerPoolEntry, error) {
	entry := &models.ContainerPoolEntry{}
	query := `
		SELECT id, container_id, assigned
		FROM container_pool
		WHERE assigned = FALSE
		ORDER BY id ASC
		LIMIT 1
		FOR UPDATE
	`
	err := r.db.QueryRow(ctx, query).Scan(&entry.ID, &entry.ContainerID, &entry.Assigned)
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, `UPDATE container_pool SET assigned = TRUE WHERE id = $1`, entry.ID)
	if err != nil {
		return nil, err
	}
	entry.Assigned = true
	return entry, nil
}

// Release marks a container id unassigned again. A miss (unknown id or
// already unassigned) returns false without an error; callers report it as a
// soft mismatch.
func (r *containerPoolRepo) Release(ctx context.Context, containerID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE container_pool SET assigned = FALSE
		WHERE container_id = $1 AND assigned = TRUE
	`, containerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *containerPoolRepo) Seed(ctx context.Context, containerIDs []string) error {
	query := `
		INSERT INTO container_pool (container_id, assigned)
		VALUES ($1, FALSE)
		ON CONFLICT (container_id) DO NOTHING
	`
	for _, cid := range containerIDs {
		if _, err := r.db.Exec(ctx, query, cid); err != nil {
			return err
		}
	}
	return nil
}

func (r *containerPoolRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM container_pool`).Scan(&count)
	return count, err
}

func (r *containerPoolRepo) List(ctx context.Context) ([]*models.ContainerPoolEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, container_id, assigned
		FROM container_pool
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ContainerPoolEntry
	for rows.Next() {
		entry := &models.ContainerPoolEntry{}
		if err := rows.Scan(&entry.ID, &entry.ContainerID, &entry.Assigned); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListOrphanedAssigned returns container ids marked assigned that no live box
// references. A non-empty result means a past release was lost.
func (r *containerPoolRepo) ListOrphanedAssigned(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.container_id
		FROM container_pool p
		WHERE p.assigned = TRUE
		  AND NOT EXISTS (SELECT 1 FROM boxes b WHERE b.container_id = p.container_id)
		ORDER BY p.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var cid string
		if err := rows.Scan(&cid); err != nil {
			return nil, err
		}
		ids = append(ids, cid)
	}
	return ids, rows.Err()
}
