package repositories

import (
	"context"

	"palletdock/internal/models"

	"github.com/jackc/pgx/v5"
)

// appointmentSeqLockKey is the advisory lock key serializing issuance of new
// appointment numbers across transactions.
const appointmentSeqLockKey = 815001

const boxColumns = `id, container_id, pallet_id, image_filename, ocr_confidence,
		purchase_order, style, item_description, color, sku_number,
		quantity, net_weight_kg, gross_weight_kg, measurement,
		consigned_to, deliver_to, deliver_to_address, country_of_origin,
		carton_no, appointment_order, created_at`

type BoxRepository interface {
	WithTx(tx pgx.Tx) BoxRepository
	Create(ctx context.Context, box *models.Box) error
	GetByID(ctx context.Context, id int64) (*models.Box, error)
	ListByPallet(ctx context.Context, palletID int64) ([]*models.Box, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByPallet(ctx context.Context, palletID int64) (int64, error)
	ExistsByPurchaseOrder(ctx context.Context, purchaseOrder string) (bool, error)
	FirstByPurchaseOrder(ctx context.Context, purchaseOrder string) (*models.Box, error)
	MaxAppointmentOrder(ctx context.Context) (int, error)
	LockAppointmentSequence(ctx context.Context) error
	FindAppointmentConflicts(ctx context.Context) ([]models.AppointmentConflict, error)
}

type boxRepo struct {
	db Querier
}

func NewBoxRepo(db Querier) BoxRepository {
	return &boxRepo{db: db}
}

func (r *boxRepo) WithTx(tx pgx.Tx) BoxRepository {
	return &boxRepo{db: tx}
}

// Create inserts the box and fills in its generated id and timestamp.
func (r *boxRepo) Create(ctx context.Context, box *models.Box) error {
	query := `
		INSERT INTO boxes (container_id, pallet_id, image_filename, ocr_confidence,
			purchase_order, style, item_description, color, sku_number,
			quantity, net_weight_kg, gross_weight_kg, measurement,
			consigned_to, deliver_to, deliver_to_address, country_of_origin,
			carton_no, appointment_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		box.ContainerID, box.PalletID, box.ImageFilename, box.OCRConfidence,
		box.PurchaseOrder, box.Style, box.ItemDescription, box.Color, box.SKUNumber,
		box.Quantity, box.NetWeightKg, box.GrossWeightKg, box.Measurement,
		box.ConsignedTo, box.DeliverTo, box.DeliverToAddress, box.CountryOfOrigin,
		box.CartonNo, box.AppointmentOrder,
	).Scan(&box.ID, &box.CreatedAt)
}

func (r *boxRepo) GetByID(ctx context.Context, id int64) (*models.Box, error) {
	row := r.db.QueryRow(ctx, `SELECT `+boxColumns+` FROM boxes WHERE id = $1`, id)
	return scanBox(row)
}

// ListByPallet returns the pallet's boxes oldest-first. The first box defines
// the pallet's current combination.
func (r *boxRepo) ListByPallet(ctx context.Context, palletID int64) ([]*models.Box, error) {
	rows, err := r.db.Query(ctx, `SELECT `+boxColumns+` FROM boxes WHERE pallet_id = $1 ORDER BY id ASC`, palletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boxes []*models.Box
	for rows.Next() {
		box, err := scanBox(rows)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, box)
	}
	return boxes, rows.Err()
}

func (r *boxRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM boxes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *boxRepo) DeleteByPallet(ctx context.Context, palletID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM boxes WHERE pallet_id = $1`, palletID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *boxRepo) ExistsByPurchaseOrder(ctx context.Context, purchaseOrder string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM boxes WHERE LOWER(TRIM(purchase_order)) = LOWER(TRIM($1)))
	`, purchaseOrder).Scan(&exists)
	return exists, err
}

// FirstByPurchaseOrder returns the earliest box (lowest id) carrying the
// purchase order, case-insensitively.
func (r *boxRepo) FirstByPurchaseOrder(ctx context.Context, purchaseOrder string) (*models.Box, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+boxColumns+`
		FROM boxes
		WHERE LOWER(TRIM(purchase_order)) = LOWER(TRIM($1))
		ORDER BY id ASC
		LIMIT 1
	`, purchaseOrder)
	return scanBox(row)
}

// MaxAppointmentOrder returns the highest issued appointment number as an
// integer, 0 when no boxes exist.
func (r *boxRepo) MaxAppointmentOrder(ctx context.Context) (int, error) {
	var max int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(appointment_order::int), 0) FROM boxes
	`).Scan(&max)
	return max, err
}

// LockAppointmentSequence takes the transaction-scoped advisory lock guarding
// new appointment number issuance. Released automatically at commit/rollback.
func (r *boxRepo) LockAppointmentSequence(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, appointmentSeqLockKey)
	return err
}

// FindAppointmentConflicts lists purchase orders whose boxes carry more than
// one distinct appointment order.
func (r *boxRepo) FindAppointmentConflicts(ctx context.Context) ([]models.AppointmentConflict, error) {
	rows, err := r.db.Query(ctx, `
		SELECT LOWER(TRIM(purchase_order)) AS po, ARRAY_AGG(DISTINCT appointment_order ORDER BY appointment_order)
		FROM boxes
		GROUP BY LOWER(TRIM(purchase_order))
		HAVING COUNT(DISTINCT appointment_order) > 1
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conflicts []models.AppointmentConflict
	for rows.Next() {
		var c models.AppointmentConflict
		if err := rows.Scan(&c.PurchaseOrder, &c.Orders); err != nil {
			return nil, err
		}
		conflicts = append(conflicts, c)
	}
	return conflicts, rows.Err()
}

func scanBox(row pgx.Row) (*models.Box, error) {
	box := &models.Box{}
	err := row.Scan(
		&box.ID, &box.ContainerID, &box.PalletID, &box.ImageFilename, &box.OCRConfidence,
		&box.PurchaseOrder, &box.Style, &box.ItemDescription, &box.Color, &box.SKUNumber,
		&box.Quantity, &box.NetWeightKg, &box.GrossWeightKg, &box.Measurement,
		&box.ConsignedTo, &box.DeliverTo, &box.DeliverToAddress, &box.CountryOfOrigin,
		&box.CartonNo, &box.AppointmentOrder, &box.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return box, nil
}
