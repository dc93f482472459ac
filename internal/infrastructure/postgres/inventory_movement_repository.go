package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dcastano/bodega-api/internal/domain/entity"
	"github.com/dcastano/bodega-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: los movimientos son historia inmutable.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, type, quantity, supplier_id, notes, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	supplierID := (*string)(nil)
	if movement.SupplierID != "" {
		supplierID = &movement.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		supplierID, movement.Notes, movement.Date, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, supplier_id, notes, date, created_at
		FROM inventory_movements WHERE id = $1`
	var m entity.InventoryMovement
	var supplierID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &supplierID, &m.Notes, &m.Date, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if supplierID != nil {
		m.SupplierID = *supplierID
	}
	return &m, nil
}

// List lista movimientos según el filtro, descendente por fecha.
func (r *InventoryMovementRepo) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, supplier_id, notes, date, created_at
		FROM inventory_movements WHERE 1=1`
	var args []any
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY date DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var supplierID *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &supplierID,
			&m.Notes, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if supplierID != nil {
			m.SupplierID = *supplierID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByProduct cuenta los movimientos que referencian un producto.
func (r *InventoryMovementRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM inventory_movements WHERE product_id = $1`, productID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements by product: %w", err)
	}
	return n, nil
}
