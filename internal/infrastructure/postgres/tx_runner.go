package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/logistica-api/internal/application/planning"
	"github.com/jhoicas/logistica-api/internal/application/stock"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// Ensure TxRunner implements planning.TxRunner and stock.TxRunner.
var _ planning.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRequirements inicia una transacción con los repos del motor de
// necesidades, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) RunRequirements(ctx context.Context, fn func(
	reqRepo repository.RequirementRepository,
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	reqRepo := NewRequirementRepository(tx)
	stockRepo := NewStockRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(reqRepo, stockRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunShipments inicia una transacción con los repos del motor de envíos.
func (r *TxRunner) RunShipments(ctx context.Context, fn func(
	shipRepo repository.ShipmentRepository,
	stockRepo repository.StockRepository,
	panelistStockRepo repository.PanelistStockRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	shipRepo := NewShipmentRepository(tx)
	stockRepo := NewStockRepository(tx)
	panelistStockRepo := NewPanelistStockRepository(tx)
	movRepo := NewMovementRepository(tx)
	alertRepo := NewAlertRepository(tx)

	if err := fn(shipRepo, stockRepo, panelistStockRepo, movRepo, alertRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción para los ajustes manuales de stock.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	alertRepo repository.AlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	movRepo := NewMovementRepository(tx)
	alertRepo := NewAlertRepository(tx)

	if err := fn(stockRepo, movRepo, alertRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
