package planning

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	domplanning "github.com/jhoicas/logistica-api/internal/domain/planning"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// ReferenceLoader carga los datos de referencia de una corrida: BOM,
// catálogo activo, topología y pools de stock. Las lecturas sin dependencia
// entre sí se hacen en paralelo.
type ReferenceLoader struct {
	bomRepo           repository.BomRepository
	materialRepo      repository.MaterialRepository
	nodeRepo          repository.NodeRepository
	panelistRepo      repository.PanelistRepository
	stockRepo         repository.StockRepository
	panelistStockRepo repository.PanelistStockRepository
}

// NewReferenceLoader construye el cargador de referencias.
func NewReferenceLoader(
	bomRepo repository.BomRepository,
	materialRepo repository.MaterialRepository,
	nodeRepo repository.NodeRepository,
	panelistRepo repository.PanelistRepository,
	stockRepo repository.StockRepository,
	panelistStockRepo repository.PanelistStockRepository,
) *ReferenceLoader {
	return &ReferenceLoader{
		bomRepo:           bomRepo,
		materialRepo:      materialRepo,
		nodeRepo:          nodeRepo,
		panelistRepo:      panelistRepo,
		stockRepo:         stockRepo,
		panelistStockRepo: panelistStockRepo,
	}
}

// Load arma el ReferenceSet para un conjunto de líneas de demanda.
// Primero el BOM (define qué materiales importan) y luego, en paralelo,
// catálogo, stock regulador, nodos y panelistas; al final el stock de los
// panelistas resueltos.
func (l *ReferenceLoader) Load(ctx context.Context, accountID string, lines []entity.DemandLine) (*domplanning.ReferenceSet, error) {
	productIDs, nodeIDs, linePanelistIDs := collectLineKeys(lines)

	refs := &domplanning.ReferenceSet{
		BomByProduct:   make(map[string][]entity.BomLine),
		Materials:      make(map[string]*entity.Material),
		Nodes:          make(map[string]*entity.Node),
		PanelistByNode: make(map[string]*entity.Panelist),
		PanelistByID:   make(map[string]*entity.Panelist),
		PanelistStock:  make(map[domplanning.StockKey]decimal.Decimal),
		RegulatorStock: make(map[string]*entity.MaterialStock),
	}
	if len(lines) == 0 {
		return refs, nil
	}

	bomLines, err := l.bomRepo.ListByProducts(ctx, accountID, productIDs)
	if err != nil {
		return nil, err
	}
	materialIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, bom := range bomLines {
		refs.BomByProduct[bom.ProductID] = append(refs.BomByProduct[bom.ProductID], bom)
		if _, ok := seen[bom.MaterialID]; !ok {
			seen[bom.MaterialID] = struct{}{}
			materialIDs = append(materialIDs, bom.MaterialID)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		materials, err := l.materialRepo.ListActiveByIDs(gctx, materialIDs)
		if err != nil {
			return err
		}
		for _, m := range materials {
			refs.Materials[m.ID] = m
		}
		return nil
	})

	g.Go(func() error {
		stocks, err := l.stockRepo.ListByMaterials(gctx, accountID, materialIDs)
		if err != nil {
			return err
		}
		for _, s := range stocks {
			refs.RegulatorStock[s.MaterialID] = s
		}
		return nil
	})

	g.Go(func() error {
		nodes, err := l.nodeRepo.ListByIDs(gctx, nodeIDs)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			refs.Nodes[n.ID] = n
		}
		return nil
	})

	// Los dos fetches de panelistas alimentan el mismo mapa PanelistByID;
	// cada goroutine acumula en su propio slice y el merge ocurre tras Wait.
	var nodePanelists, linePanelists []*entity.Panelist

	g.Go(func() error {
		panelists, err := l.panelistRepo.ListByNodes(gctx, accountID, nodeIDs)
		if err != nil {
			return err
		}
		nodePanelists = panelists
		return nil
	})

	g.Go(func() error {
		if len(linePanelistIDs) == 0 {
			return nil
		}
		panelists, err := l.panelistRepo.ListByIDs(gctx, linePanelistIDs)
		if err != nil {
			return err
		}
		linePanelists = panelists
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range nodePanelists {
		refs.PanelistByNode[p.NodeID] = p
		refs.PanelistByID[p.ID] = p
	}
	for _, p := range linePanelists {
		refs.PanelistByID[p.ID] = p
	}

	panelistIDs := make([]string, 0, len(refs.PanelistByID))
	for id := range refs.PanelistByID {
		panelistIDs = append(panelistIDs, id)
	}
	if len(panelistIDs) > 0 {
		stocks, err := l.panelistStockRepo.ListByPanelists(ctx, accountID, panelistIDs)
		if err != nil {
			return nil, err
		}
		for _, s := range stocks {
			key := domplanning.StockKey{PanelistID: s.PanelistID, MaterialID: s.MaterialID}
			refs.PanelistStock[key] = s.Quantity
		}
	}

	return refs, nil
}

func collectLineKeys(lines []entity.DemandLine) (productIDs, nodeIDs, panelistIDs []string) {
	products := make(map[string]struct{})
	nodes := make(map[string]struct{})
	panelists := make(map[string]struct{})
	for _, line := range lines {
		if line.ProductID != "" {
			if _, ok := products[line.ProductID]; !ok {
				products[line.ProductID] = struct{}{}
				productIDs = append(productIDs, line.ProductID)
			}
		}
		if line.OriginNodeID != "" {
			if _, ok := nodes[line.OriginNodeID]; !ok {
				nodes[line.OriginNodeID] = struct{}{}
				nodeIDs = append(nodeIDs, line.OriginNodeID)
			}
		}
		if line.OriginPanelistID != "" {
			if _, ok := panelists[line.OriginPanelistID]; !ok {
				panelists[line.OriginPanelistID] = struct{}{}
				panelistIDs = append(panelistIDs, line.OriginPanelistID)
			}
		}
	}
	return productIDs, nodeIDs, panelistIDs
}
