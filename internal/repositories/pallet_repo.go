package repositories

import (
	"context"

	"palletdock/internal/models"

	"github.com/jackc/pgx/v5"
)

// PalletRepository reads the fixed pallet set. Pallets are created once at
// seed time and never mutated directly.
type PalletRepository interface {
	WithTx(tx pgx.Tx) PalletRepository
	Create(ctx context.Context, pallet *models.Pallet) error
	GetByID(ctx context.Context, id int64) (*models.Pallet, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Pallet, error)
	List(ctx context.Context) ([]*models.Pallet, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type palletRepo struct {
	db Querier
}

func NewPalletRepo(db Querier) PalletRepository {
	return &palletRepo{db: db}
}

func (r *palletRepo) WithTx(tx pgx.Tx) PalletRepository {
	return &palletRepo{db: tx}
}

func (r *palletRepo) Create(ctx context.Context, pallet *models.Pallet) error {
	query := `
		INSERT INTO pallets (code, master_container_id, capacity, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (code) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, pallet.Code, pallet.MasterContainerID, pallet.Capacity)
	return err
}

func (r *palletRepo) GetByID(ctx context.Context, id int64) (*models.Pallet, error) {
	return r.get(ctx, `
		SELECT id, code, master_container_id, capacity, created_at
		FROM pallets
		WHERE id = $1
	`, id)
}

// GetByIDForUpdate locks the pallet row for the rest of the transaction so
// concurrent capacity and homogeneity checks against the same pallet
// serialize.
func (r *palletRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Pallet, error) {
	return r.get(ctx, `
		SELECT id, code, master_container_id, capacity, created_at
		FROM pallets
		WHERE id = $1
		FOR UPDATE
	`, id)
}

func (r *palletRepo) get(ctx context.Context, query string, id int64) (*models.Pallet, error) {
	pallet := &models.Pallet{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pallet.ID, &pallet.Code, &pallet.MasterContainerID, &pallet.Capacity, &pallet.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return pallet, nil
}

func (r *palletRepo) List(ctx context.Context) ([]*models.Pallet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, master_container_id, capacity, created_at
		FROM pallets
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pallets []*models.Pallet
	for rows.Next() {
		pallet := &models.Pallet{}
		if err := rows.Scan(&pallet.ID, &pallet.Code, &pallet.MasterContainerID, &pallet.Capacity, &pallet.CreatedAt); err != nil {
			return nil, err
		}
		pallets = append(pallets, pallet)
	}
	return pallets, rows.Err()
}

func (r *palletRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pallets WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *palletRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pallets`).Scan(&count)
	return count, err
}
