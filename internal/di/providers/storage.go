package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/ElenaBalahnina123/BookDiary/internal/config"
	"github.com/ElenaBalahnina123/BookDiary/internal/logger"
	"github.com/ElenaBalahnina123/BookDiary/internal/media/images"
)

// ProvideImageCache provides the two-tier cover image cache.
func ProvideImageCache(i do.Injector) (*images.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorage(cfg.Images.CachePath)
	if err != nil {
		return nil, fmt.Errorf("image storage: %w", err)
	}

	cache := images.NewCache(storage, cfg.Images.MemoryCapacity, log.Logger)

	log.Info("Image cache initialized",
		"path", cfg.Images.CachePath,
		"memory_capacity", cfg.Images.MemoryCapacity,
	)

	return cache, nil
}
