package providers

import (
	"github.com/samber/do/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/catalog"
	"github.com/ElenaBalahnina123/BookDiary/internal/config"
	"github.com/ElenaBalahnina123/BookDiary/internal/logger"
)

// CatalogClientHandle wraps the catalog client with shutdown capability.
type CatalogClientHandle struct {
	*catalog.Client
}

// Shutdown implements do.Shutdownable.
func (h *CatalogClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideCatalogClient provides the remote genre catalog client.
func ProvideCatalogClient(i do.Injector) (*CatalogClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := catalog.NewClient(cfg.Catalog.BaseURL, log.Logger)

	log.Info("Catalog client initialized", "base_url", cfg.Catalog.BaseURL)

	return &CatalogClientHandle{Client: client}, nil
}
