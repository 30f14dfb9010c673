package repository

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Niranjan-NN/stream360/internal/config"
)

// Constructors are registered by init in setup.go so this package never
// imports its own implementations directly.
var (
	newRedisRepository  func(cfg config.RedisConfig) (Repository, error)
	newMemoryRepository func() Repository
)

// New selects the backing store from config: Redis when enabled, the
// in-memory store otherwise. Memory is fine for a single process; Redis
// keeps rooms across restarts and between replicas.
func New(cfg config.RedisConfig) (Repository, error) {
	if cfg.Enabled {
		repo, err := newRedisRepository(cfg)
		if err != nil {
			return nil, fmt.Errorf("redis repository: %w", err)
		}
		log.Info().Str("module", "repository").Msg("using redis repository")
		return repo, nil
	}
	log.Info().Str("module", "repository").Msg("using in-memory repository")
	return newMemoryRepository(), nil
}
