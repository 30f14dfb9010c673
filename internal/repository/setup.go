package repository

import (
	"github.com/Niranjan-NN/stream360/internal/config"
	"github.com/Niranjan-NN/stream360/internal/repository/memory"
	"github.com/Niranjan-NN/stream360/internal/repository/redis"
)

// init registers the actual repository implementations
func init() {
	newRedisRepository = func(cfg config.RedisConfig) (Repository, error) {
		return redis.NewRepository(cfg)
	}

	newMemoryRepository = func() Repository {
		return memory.NewRepository()
	}
}
