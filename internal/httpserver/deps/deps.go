package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkminder/linkminder/internal/collection"
	"github.com/linkminder/linkminder/internal/index"
	"github.com/linkminder/linkminder/internal/logger"
)

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time       // for testing, defaults to time.Now
	RedisClient       *redis.Client          // Redis client connection
	MemoryIndex       *index.MemoryIndex     // In-memory link/rule snapshot
	Collection        *collection.Collection // All collection operations
	RulesFile         string                 // Path to the rules seed file (empty if none)
	ReclassifyTrigger chan struct{}          // Channel to trigger a manual reclassify sweep
}
