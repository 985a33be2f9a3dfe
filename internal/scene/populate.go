package scene

import (
	"context"
	"sync"

	"showroom/internal/catalog"
	"showroom/internal/logging"
	"showroom/internal/placeholder"
	"showroom/internal/render"
)

// populate fills the scene from the collection catalog. Products settle
// independently and concurrently; any failure below the platform layer
// becomes a placeholder, never an error. The populated channel closes once
// every product has settled.
func (m *Manager) populate(ctx context.Context) {
	defer m.wg.Done()
	defer close(m.populated)

	refs, err := m.deps.Catalog.FetchCatalog(ctx, m.cfg.Collection)
	if err != nil {
		m.logger.Warn("catalog unavailable; staging demo placeholders",
			logging.Error(err),
			logging.String(logging.FieldEventType, "catalog_fallback"),
		)
		m.placeDemoSet()
		return
	}
	if len(refs) == 0 {
		m.logger.Info("collection is empty",
			logging.String(logging.FieldEventType, "populate_done"),
		)
		return
	}

	var wg sync.WaitGroup
	for _, ref := range refs {
		wg.Add(1)
		go func(ref catalog.AssetReference) {
			defer wg.Done()
			m.settleProduct(ctx, ref)
		}(ref)
	}
	wg.Wait()

	verified, placeholders := 0, 0
	for _, e := range m.Entities() {
		if e.Kind == EntityVerified {
			verified++
		} else {
			placeholders++
		}
	}
	m.logger.Info("population settled",
		logging.String(logging.FieldEventType, "populate_done"),
		logging.Int("verified", verified),
		logging.Int("placeholders", placeholders),
	)
}

// settleProduct resolves exactly one product slot: validate, then load, and
// on any failure fall back to the branded placeholder.
func (m *Manager) settleProduct(ctx context.Context, ref catalog.AssetReference) {
	logger := m.logger.With(logging.String(logging.FieldProductID, ref.ProductID))

	verdict := m.deps.Validator.Validate(ctx, ref.ModelURL)
	if !verdict.Passed {
		logger.Info("asset withheld from display",
			logging.String(logging.FieldEventType, "fidelity_rejected"),
			logging.Float64("score", verdict.Score),
			logging.String(logging.FieldAssetURL, ref.ModelURL),
		)
		m.placePlaceholder(ref)
		return
	}

	model, err := m.deps.Loader.Load(ctx, ref, nil)
	if err != nil {
		logger.Warn("model load failed; substituting placeholder",
			logging.Error(err),
			logging.String(logging.FieldEventType, "load_failed"),
			logging.String(logging.FieldAssetURL, ref.ModelURL),
		)
		m.placePlaceholder(ref)
		return
	}

	if m.place(ref.ProductID, EntityVerified, model.Node) {
		_ = m.deps.Analytics.TrackImpression(ctx, ref.ProductID)
	}
}

func (m *Manager) placePlaceholder(ref catalog.AssetReference) {
	node := placeholder.CreateNamed(ref.ProductID, ref.Name, ref.Slot())
	m.place(ref.ProductID, EntityPlaceholder, node)
}

// placeDemoSet stages the fixed demo products used when the catalog cannot
// be reached at all.
func (m *Manager) placeDemoSet() {
	for _, demo := range placeholder.DemoSet() {
		node := placeholder.CreateNamed(demo.ProductID, demo.Name, demo.Position)
		m.place(demo.ProductID, EntityPlaceholder, node)
	}
}

// place adds one entity node under the mount check. Population races with
// disposal, so a slot is only placed while the session is still mounted; a
// false return means the session ended first.
func (m *Manager) place(productID string, kind EntityKind, node render.Node) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateMounted {
		return false
	}
	if _, exists := m.entities[productID]; exists {
		return false
	}
	handle, err := m.surface.AddNode(node)
	if err != nil {
		m.logger.Warn("node placement failed",
			logging.Error(err),
			logging.String(logging.FieldProductID, productID),
		)
		return false
	}
	m.entities[productID] = PlacedEntity{ProductID: productID, Kind: kind, Handle: handle}
	m.logger.Debug("entity placed",
		logging.String(logging.FieldProductID, productID),
		logging.String(logging.FieldEntityKind, string(kind)),
	)
	return true
}
