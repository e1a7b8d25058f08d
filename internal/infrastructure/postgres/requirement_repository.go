package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.RequirementRepository = (*RequirementRepo)(nil)

// RequirementRepo períodos de necesidades sobre PostgreSQL
// (material_requirements_periods).
type RequirementRepo struct {
	q Querier
}

// NewRequirementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequirementRepository(q Querier) *RequirementRepo {
	return &RequirementRepo{q: q}
}

const requirementColumns = `id, account_id, material_id, period_start, period_end,
	quantity_needed, quantity_ordered, quantity_received, status, plans_count,
	COALESCE(notes, ''), created_at, updated_at`

// ListPendingForUpdate devuelve los registros pending de un material
// bloqueando sus filas. El bloqueo serializa corridas de unificación
// concurrentes sobre el mismo material.
func (r *RequirementRepo) ListPendingForUpdate(ctx context.Context, accountID, materialID string) ([]*entity.RequirementPeriod, error) {
	query := `
		SELECT ` + requirementColumns + `
		FROM material_requirements_periods
		WHERE account_id = $1 AND material_id = $2 AND status = $3
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, accountID, materialID, entity.RequirementStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending requirements for update: %w", err)
	}
	defer rows.Close()
	return scanRequirements(rows)
}

// Insert persiste un registro nuevo; genera el id si viene vacío.
func (r *RequirementRepo) Insert(ctx context.Context, req *entity.RequirementPeriod) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_requirements_periods
			(id, account_id, material_id, period_start, period_end,
			 quantity_needed, quantity_ordered, quantity_received, status, plans_count, notes,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`
	notes := (*string)(nil)
	if req.Notes != "" {
		notes = &req.Notes
	}
	_, err := r.q.Exec(ctx, query,
		req.ID, req.AccountID, req.MaterialID, req.PeriodStart, req.PeriodEnd,
		req.QuantityNeeded, req.QuantityOrdered, req.QuantityReceived,
		req.Status, req.PlansCount, notes,
	)
	if err != nil {
		return fmt.Errorf("insert requirement period: %w", err)
	}
	return nil
}

// DeleteByIDs elimina un conjunto de registros de la cuenta.
func (r *RequirementRepo) DeleteByIDs(ctx context.Context, accountID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM material_requirements_periods WHERE account_id = $1 AND id = ANY($2)`
	if _, err := r.q.Exec(ctx, query, accountID, ids); err != nil {
		return fmt.Errorf("delete requirement periods: %w", err)
	}
	return nil
}

// GetByID devuelve un registro, o nil si no existe.
func (r *RequirementRepo) GetByID(ctx context.Context, accountID, id string) (*entity.RequirementPeriod, error) {
	return r.get(ctx, accountID, id, false)
}

// GetByIDForUpdate devuelve el registro bloqueando la fila.
func (r *RequirementRepo) GetByIDForUpdate(ctx context.Context, accountID, id string) (*entity.RequirementPeriod, error) {
	return r.get(ctx, accountID, id, true)
}

func (r *RequirementRepo) get(ctx context.Context, accountID, id string, forUpdate bool) (*entity.RequirementPeriod, error) {
	query := `
		SELECT ` + requirementColumns + `
		FROM material_requirements_periods
		WHERE account_id = $1 AND id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.RequirementPeriod
	err := r.q.QueryRow(ctx, query, accountID, id).Scan(
		&p.ID, &p.AccountID, &p.MaterialID, &p.PeriodStart, &p.PeriodEnd,
		&p.QuantityNeeded, &p.QuantityOrdered, &p.QuantityReceived,
		&p.Status, &p.PlansCount, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requirement period: %w", err)
	}
	return &p, nil
}

// Update persiste estado y cantidades de un registro existente.
func (r *RequirementRepo) Update(ctx context.Context, req *entity.RequirementPeriod) error {
	query := `
		UPDATE material_requirements_periods
		SET quantity_needed = $3, quantity_ordered = $4, quantity_received = $5,
		    status = $6, plans_count = $7, updated_at = now()
		WHERE account_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		req.AccountID, req.ID,
		req.QuantityNeeded, req.QuantityOrdered, req.QuantityReceived,
		req.Status, req.PlansCount,
	)
	if err != nil {
		return fmt.Errorf("update requirement period: %w", err)
	}
	return nil
}

// Delete elimina un registro desde cualquier estado.
func (r *RequirementRepo) Delete(ctx context.Context, accountID, id string) error {
	query := `DELETE FROM material_requirements_periods WHERE account_id = $1 AND id = $2`
	if _, err := r.q.Exec(ctx, query, accountID, id); err != nil {
		return fmt.Errorf("delete requirement period: %w", err)
	}
	return nil
}

// ListOpenByPeriod lista registros no recibidos cuyo período toca [start, end],
// más recientes primero.
func (r *RequirementRepo) ListOpenByPeriod(ctx context.Context, accountID string, start, end time.Time) ([]*entity.RequirementPeriod, error) {
	query := `
		SELECT ` + requirementColumns + `
		FROM material_requirements_periods
		WHERE account_id = $1
		  AND status <> $2
		  AND period_start <= $3 AND period_end >= $4
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, accountID, entity.RequirementStatusReceived, end, start)
	if err != nil {
		return nil, fmt.Errorf("list open requirement periods: %w", err)
	}
	defer rows.Close()
	return scanRequirements(rows)
}

// InTransitByMaterial agrega por material la cantidad pedida y aún no
// recibida sobre registros en estado ordered.
func (r *RequirementRepo) InTransitByMaterial(ctx context.Context, accountID string, materialIDs []string) (map[string]decimal.Decimal, error) {
	if len(materialIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	query := `
		SELECT material_id, SUM(GREATEST(quantity_ordered - quantity_received, 0))
		FROM material_requirements_periods
		WHERE account_id = $1 AND material_id = ANY($2) AND status = $3
		GROUP BY material_id`
	rows, err := r.q.Query(ctx, query, accountID, materialIDs, entity.RequirementStatusOrdered)
	if err != nil {
		return nil, fmt.Errorf("sum in-transit quantities: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var materialID string
		var qty decimal.Decimal
		if err := rows.Scan(&materialID, &qty); err != nil {
			return nil, fmt.Errorf("scan in-transit quantity: %w", err)
		}
		out[materialID] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate in-transit quantities: %w", err)
	}
	return out, nil
}

func scanRequirements(rows pgx.Rows) ([]*entity.RequirementPeriod, error) {
	periods := make([]*entity.RequirementPeriod, 0)
	for rows.Next() {
		var p entity.RequirementPeriod
		if err := rows.Scan(
			&p.ID, &p.AccountID, &p.MaterialID, &p.PeriodStart, &p.PeriodEnd,
			&p.QuantityNeeded, &p.QuantityOrdered, &p.QuantityReceived,
			&p.Status, &p.PlansCount, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan requirement period: %w", err)
		}
		periods = append(periods, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requirement periods: %w", err)
	}
	return periods, nil
}
