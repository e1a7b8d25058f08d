package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo envíos a panelistas sobre PostgreSQL (material_shipments y
// material_shipment_items).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = `id, account_id, COALESCE(shipment_number, ''), panelist_id, status,
	expected_date, shipment_date, COALESCE(tracking_number, ''), total_items,
	COALESCE(notes, ''), COALESCE(created_by::text, ''), created_at, updated_at`

// ListPendingByPanelistForUpdate devuelve los envíos pending del panelista
// con sus ítems, bloqueando las filas de envío. Serializa consolidaciones
// concurrentes sobre el mismo panelista.
func (r *ShipmentRepo) ListPendingByPanelistForUpdate(ctx context.Context, accountID, panelistID string) ([]*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM material_shipments
		WHERE account_id = $1 AND panelist_id = $2 AND status = $3
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, accountID, panelistID, entity.ShipmentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending shipments for update: %w", err)
	}
	shipments, err := scanShipments(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, accountID, shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// Insert persiste un envío con sus ítems; genera ids vacíos.
func (r *ShipmentRepo) Insert(ctx context.Context, shipment *entity.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_shipments
			(id, account_id, shipment_number, panelist_id, status,
			 expected_date, shipment_date, tracking_number, total_items, notes, created_by,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`
	notes := (*string)(nil)
	if shipment.Notes != "" {
		notes = &shipment.Notes
	}
	createdBy := (*string)(nil)
	if shipment.CreatedBy != "" {
		createdBy = &shipment.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		shipment.ID, shipment.AccountID, shipment.ShipmentNumber, shipment.PanelistID,
		shipment.Status, shipment.ExpectedDate, shipment.ShipmentDate,
		shipment.TrackingNumber, shipment.TotalItems, notes, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}

	itemQuery := `
		INSERT INTO material_shipment_items
			(id, account_id, shipment_id, material_id, quantity_sent, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	for i := range shipment.Items {
		item := &shipment.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.ShipmentID = shipment.ID
		itemNotes := (*string)(nil)
		if item.Notes != "" {
			itemNotes = &item.Notes
		}
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, shipment.AccountID, shipment.ID,
			item.MaterialID, item.QuantitySent, itemNotes,
		)
		if err != nil {
			return fmt.Errorf("insert shipment item: %w", err)
		}
	}
	return nil
}

// DeleteWithItems elimina envíos y sus ítems.
func (r *ShipmentRepo) DeleteWithItems(ctx context.Context, accountID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	itemQuery := `DELETE FROM material_shipment_items WHERE account_id = $1 AND shipment_id = ANY($2)`
	if _, err := r.q.Exec(ctx, itemQuery, accountID, ids); err != nil {
		return fmt.Errorf("delete shipment items: %w", err)
	}
	query := `DELETE FROM material_shipments WHERE account_id = $1 AND id = ANY($2)`
	if _, err := r.q.Exec(ctx, query, accountID, ids); err != nil {
		return fmt.Errorf("delete shipments: %w", err)
	}
	return nil
}

// GetByID devuelve un envío con ítems, o nil si no existe.
func (r *ShipmentRepo) GetByID(ctx context.Context, accountID, id string) (*entity.Shipment, error) {
	return r.get(ctx, accountID, id, false)
}

// GetByIDForUpdate devuelve el envío con ítems bloqueando la fila.
func (r *ShipmentRepo) GetByIDForUpdate(ctx context.Context, accountID, id string) (*entity.Shipment, error) {
	return r.get(ctx, accountID, id, true)
}

func (r *ShipmentRepo) get(ctx context.Context, accountID, id string, forUpdate bool) (*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM material_shipments
		WHERE account_id = $1 AND id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Shipment
	err := r.q.QueryRow(ctx, query, accountID, id).Scan(
		&s.ID, &s.AccountID, &s.ShipmentNumber, &s.PanelistID, &s.Status,
		&s.ExpectedDate, &s.ShipmentDate, &s.TrackingNumber, &s.TotalItems,
		&s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	if err := r.loadItems(ctx, accountID, []*entity.Shipment{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByAccount lista envíos de la cuenta con sus ítems, más recientes primero.
func (r *ShipmentRepo) ListByAccount(ctx context.Context, accountID string) ([]*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM material_shipments
		WHERE account_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	shipments, err := scanShipments(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, accountID, shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// loadItems carga los ítems de un conjunto de envíos en una sola consulta.
func (r *ShipmentRepo) loadItems(ctx context.Context, accountID string, shipments []*entity.Shipment) error {
	if len(shipments) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Shipment, len(shipments))
	ids := make([]string, 0, len(shipments))
	for _, s := range shipments {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	query := `
		SELECT id, account_id, shipment_id, material_id, quantity_sent,
		       COALESCE(notes, ''), created_at, updated_at
		FROM material_shipment_items
		WHERE account_id = $1 AND shipment_id = ANY($2)
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, accountID, ids)
	if err != nil {
		return fmt.Errorf("list shipment items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.ShipmentItem
		if err := rows.Scan(
			&item.ID, &item.AccountID, &item.ShipmentID, &item.MaterialID,
			&item.QuantitySent, &item.Notes, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan shipment item: %w", err)
		}
		if s, ok := byID[item.ShipmentID]; ok {
			s.Items = append(s.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate shipment items: %w", err)
	}
	return nil
}

func scanShipments(rows pgx.Rows) ([]*entity.Shipment, error) {
	defer rows.Close()
	shipments := make([]*entity.Shipment, 0)
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(
			&s.ID, &s.AccountID, &s.ShipmentNumber, &s.PanelistID, &s.Status,
			&s.ExpectedDate, &s.ShipmentDate, &s.TrackingNumber, &s.TotalItems,
			&s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		shipments = append(shipments, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipments: %w", err)
	}
	return shipments, nil
}
