package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)
var _ repository.PanelistStockRepository = (*PanelistStockRepo)(nil)

// StockRepo stock del regulador sobre PostgreSQL (material_stocks).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, account_id, material_id, quantity, min_stock, max_stock, last_updated, created_at, updated_at`

// ListByAccount lista el stock del regulador de la cuenta.
func (r *StockRepo) ListByAccount(ctx context.Context, accountID string) ([]*entity.MaterialStock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM material_stocks
		WHERE account_id = $1
		ORDER BY material_id`
	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list regulator stocks: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

// ListByMaterials devuelve los stocks del regulador para un conjunto de
// materiales. Materiales sin fila no aparecen en el resultado.
func (r *StockRepo) ListByMaterials(ctx context.Context, accountID string, materialIDs []string) ([]*entity.MaterialStock, error) {
	if len(materialIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + stockColumns + `
		FROM material_stocks
		WHERE account_id = $1 AND material_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, accountID, materialIDs)
	if err != nil {
		return nil, fmt.Errorf("list regulator stocks by materials: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
// Si no hay fila devuelve un stock en cero sin bloquear.
func (r *StockRepo) GetForUpdate(ctx context.Context, accountID, materialID string) (*entity.MaterialStock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM material_stocks
		WHERE account_id = $1 AND material_id = $2
		FOR UPDATE`
	var s entity.MaterialStock
	err := r.q.QueryRow(ctx, query, accountID, materialID).Scan(
		&s.ID, &s.AccountID, &s.MaterialID, &s.Quantity,
		&s.MinStock, &s.MaxStock, &s.LastUpdated, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.MaterialStock{
				AccountID:  accountID,
				MaterialID: materialID,
				Quantity:   decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get regulator stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza cantidad y niveles por (cuenta, material).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.MaterialStock) error {
	if stock.ID == "" {
		stock.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_stocks (id, account_id, material_id, quantity, min_stock, max_stock, last_updated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now(), now())
		ON CONFLICT (account_id, material_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              min_stock = EXCLUDED.min_stock,
		              max_stock = EXCLUDED.max_stock,
		              last_updated = now(),
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		stock.ID, stock.AccountID, stock.MaterialID,
		stock.Quantity, stock.MinStock, stock.MaxStock,
	)
	if err != nil {
		return fmt.Errorf("upsert regulator stock: %w", err)
	}
	return nil
}

func scanStocks(rows pgx.Rows) ([]*entity.MaterialStock, error) {
	stocks := make([]*entity.MaterialStock, 0)
	for rows.Next() {
		var s entity.MaterialStock
		if err := rows.Scan(
			&s.ID, &s.AccountID, &s.MaterialID, &s.Quantity,
			&s.MinStock, &s.MaxStock, &s.LastUpdated, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan regulator stock: %w", err)
		}
		stocks = append(stocks, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regulator stocks: %w", err)
	}
	return stocks, nil
}

// PanelistStockRepo stock en poder de panelistas (panelist_material_stocks).
type PanelistStockRepo struct {
	q Querier
}

// NewPanelistStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPanelistStockRepository(q Querier) *PanelistStockRepo {
	return &PanelistStockRepo{q: q}
}

const panelistStockColumns = `id, account_id, panelist_id, material_id, quantity, last_updated, created_at, updated_at`

// ListByAccount lista el stock de panelistas de la cuenta.
func (r *PanelistStockRepo) ListByAccount(ctx context.Context, accountID string) ([]*entity.PanelistStock, error) {
	query := `
		SELECT ` + panelistStockColumns + `
		FROM panelist_material_stocks
		WHERE account_id = $1
		ORDER BY panelist_id, material_id`
	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list panelist stocks: %w", err)
	}
	defer rows.Close()
	return scanPanelistStocks(rows)
}

// ListByPanelists devuelve los stocks de un conjunto de panelistas.
func (r *PanelistStockRepo) ListByPanelists(ctx context.Context, accountID string, panelistIDs []string) ([]*entity.PanelistStock, error) {
	if len(panelistIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + panelistStockColumns + `
		FROM panelist_material_stocks
		WHERE account_id = $1 AND panelist_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, accountID, panelistIDs)
	if err != nil {
		return nil, fmt.Errorf("list stocks by panelists: %w", err)
	}
	defer rows.Close()
	return scanPanelistStocks(rows)
}

// GetForUpdate obtiene el stock de (panelista, material) con bloqueo de fila;
// stock en cero si no hay fila.
func (r *PanelistStockRepo) GetForUpdate(ctx context.Context, accountID, panelistID, materialID string) (*entity.PanelistStock, error) {
	query := `
		SELECT ` + panelistStockColumns + `
		FROM panelist_material_stocks
		WHERE account_id = $1 AND panelist_id = $2 AND material_id = $3
		FOR UPDATE`
	var s entity.PanelistStock
	err := r.q.QueryRow(ctx, query, accountID, panelistID, materialID).Scan(
		&s.ID, &s.AccountID, &s.PanelistID, &s.MaterialID,
		&s.Quantity, &s.LastUpdated, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.PanelistStock{
				AccountID:  accountID,
				PanelistID: panelistID,
				MaterialID: materialID,
				Quantity:   decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get panelist stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza por (cuenta, panelista, material).
func (r *PanelistStockRepo) Upsert(ctx context.Context, stock *entity.PanelistStock) error {
	if stock.ID == "" {
		stock.ID = uuid.New().String()
	}
	query := `
		INSERT INTO panelist_material_stocks (id, account_id, panelist_id, material_id, quantity, last_updated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now(), now())
		ON CONFLICT (account_id, panelist_id, material_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              last_updated = now(),
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		stock.ID, stock.AccountID, stock.PanelistID, stock.MaterialID, stock.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert panelist stock: %w", err)
	}
	return nil
}

func scanPanelistStocks(rows pgx.Rows) ([]*entity.PanelistStock, error) {
	stocks := make([]*entity.PanelistStock, 0)
	for rows.Next() {
		var s entity.PanelistStock
		if err := rows.Scan(
			&s.ID, &s.AccountID, &s.PanelistID, &s.MaterialID,
			&s.Quantity, &s.LastUpdated, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan panelist stock: %w", err)
		}
		stocks = append(stocks, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate panelist stocks: %w", err)
	}
	return stocks, nil
}
