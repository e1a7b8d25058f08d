package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)
var _ repository.AlertRepository = (*AlertRepo)(nil)

// MovementRepo log de movimientos de materiales (material_movements).
// Solo apéndice: las filas nunca se mutan.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create apendiza un movimiento.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_movements
			(id, account_id, material_id, movement_type, quantity,
			 from_location_type, from_location_id, to_location_type, to_location_id,
			 reference_id, reference_type, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.AccountID, movement.MaterialID,
		movement.MovementType, movement.Quantity,
		nullIfEmpty(movement.FromLocationType), nullIfEmpty(movement.FromLocationID),
		nullIfEmpty(movement.ToLocationType), nullIfEmpty(movement.ToLocationID),
		nullIfEmpty(movement.ReferenceID), nullIfEmpty(movement.ReferenceType),
		nullIfEmpty(movement.Notes), nullIfEmpty(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create material movement: %w", err)
	}
	return nil
}

// ListByAccount lista movimientos, más recientes primero.
func (r *MovementRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, account_id, material_id, movement_type, quantity,
		       COALESCE(from_location_type, ''), COALESCE(from_location_id::text, ''),
		       COALESCE(to_location_type, ''), COALESCE(to_location_id::text, ''),
		       COALESCE(reference_id::text, ''), COALESCE(reference_type, ''),
		       COALESCE(notes, ''), COALESCE(created_by::text, ''), created_at
		FROM material_movements
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list material movements: %w", err)
	}
	defer rows.Close()

	movements := make([]*entity.Movement, 0, limit)
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.AccountID, &m.MaterialID, &m.MovementType, &m.Quantity,
			&m.FromLocationType, &m.FromLocationID, &m.ToLocationType, &m.ToLocationID,
			&m.ReferenceID, &m.ReferenceType, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material movement: %w", err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate material movements: %w", err)
	}
	return movements, nil
}

// AlertRepo alertas de stock (stock_alerts). Solo apéndice.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create apendiza una alerta.
func (r *AlertRepo) Create(ctx context.Context, alert *entity.StockAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_alerts
			(id, account_id, material_id, alert_type, current_quantity, expected_quantity,
			 reference_id, reference_type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err := r.q.Exec(ctx, query,
		alert.ID, alert.AccountID, alert.MaterialID, alert.AlertType,
		alert.CurrentQuantity, alert.ExpectedQuantity,
		nullIfEmpty(alert.ReferenceID), nullIfEmpty(alert.ReferenceType),
		nullIfEmpty(alert.Notes),
	)
	if err != nil {
		return fmt.Errorf("create stock alert: %w", err)
	}
	return nil
}

// ListByAccount lista alertas, más recientes primero.
func (r *AlertRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.StockAlert, error) {
	query := `
		SELECT id, account_id, material_id, alert_type, current_quantity, expected_quantity,
		       COALESCE(reference_id::text, ''), COALESCE(reference_type, ''),
		       COALESCE(notes, ''), created_at
		FROM stock_alerts
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*entity.StockAlert, 0, limit)
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(
			&a.ID, &a.AccountID, &a.MaterialID, &a.AlertType,
			&a.CurrentQuantity, &a.ExpectedQuantity,
			&a.ReferenceID, &a.ReferenceType, &a.Notes, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		alerts = append(alerts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock alerts: %w", err)
	}
	return alerts, nil
}

// nullIfEmpty mapea cadenas vacías a NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
