package planning

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// defaultPageSize es el tamaño de página del escaneo de demanda; el store
// limita el tamaño de sus respuestas, así que se pagina siempre.
const defaultPageSize = 1000

// maxPageRetries acota los reintentos por página ante fallas transitorias.
const maxPageRetries = 3

// DemandScanner lee líneas de plan programadas en una ventana de fechas como
// un cursor perezoso: una página por llamada, con keyset por id, cancelable
// entre páginas y con reintento acotado por página.
type DemandScanner struct {
	repo     repository.DemandLineRepository
	pageSize int
}

// NewDemandScanner construye el escáner. pageSize ≤ 0 usa el tamaño por defecto.
func NewDemandScanner(repo repository.DemandLineRepository, pageSize int) *DemandScanner {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &DemandScanner{repo: repo, pageSize: pageSize}
}

// Cursor abre un cursor sobre la ventana [start, end]. El cursor es
// reiniciable: quien llama puede retomar desde el último id visto.
func (s *DemandScanner) Cursor(accountID string, start, end time.Time) *DemandCursor {
	return &DemandCursor{
		scanner:   s,
		accountID: accountID,
		start:     start,
		end:       end,
	}
}

// ScanAll recorre el cursor hasta agotarlo y devuelve todas las líneas.
// Respeta la cancelación del contexto entre páginas.
func (s *DemandScanner) ScanAll(ctx context.Context, accountID string, start, end time.Time) ([]entity.DemandLine, error) {
	cursor := s.Cursor(accountID, start, end)
	var lines []entity.DemandLine
	for {
		page, err := cursor.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return lines, nil
		}
		lines = append(lines, page...)
	}
}

// DemandCursor itera páginas de líneas de demanda. No es seguro para uso
// concurrente.
type DemandCursor struct {
	scanner   *DemandScanner
	accountID string
	start     time.Time
	end       time.Time
	afterID   string
	done      bool
}

// Next devuelve la siguiente página, o nil cuando el cursor está agotado.
// Cada página se lee con reintento exponencial acotado; un escaneo multi-
// página exitoso no debe abortar por una falla transitoria.
func (c *DemandCursor) Next(ctx context.Context) ([]entity.DemandLine, error) {
	if c.done {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var page []entity.DemandLine
	operation := func() error {
		var err error
		page, err = c.scanner.repo.ListScheduledPage(
			ctx, c.accountID, c.start, c.end, c.afterID, c.scanner.pageSize,
		)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxPageRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	if len(page) < c.scanner.pageSize {
		c.done = true
	}
	if len(page) == 0 {
		return nil, nil
	}
	c.afterID = page[len(page)-1].ID
	return page, nil
}

// LastID devuelve el último id visto, para retomar un escaneo abandonado.
func (c *DemandCursor) LastID() string { return c.afterID }

// Restart reposiciona el cursor después de un id dado.
func (c *DemandCursor) Restart(afterID string) {
	c.afterID = afterID
	c.done = false
}
