// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as persistence, host geometry, timekeeping, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - store/memory: In-memory scroll position store
// - store/sqlite: SQLite-backed scroll position store
// - store/redis: Redis-backed scroll position store
// - provider/snapshot: ViewportElementProvider fed by host geometry snapshots
// - clock/standard: Clock backed by the time package
// - clock/mock: Controllable clock for deterministic timer tests
// - logger/standard: Simple structured logger implementation
// - logger/logrus: Logrus-backed structured logger
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include timeouts and error handling
//
// # Store Implementations
//
// Memory Store Example:
//
//	store := memory.NewStore()
//	err := store.Save(ctx, "doc-a", 1420.5)
//	offset, found, err := store.Get(ctx, "doc-a")
//
// Redis Store Example:
//
//	cfg := config.RedisConfig{
//	    Address:  "localhost:6379",
//	    Password: "",
//	    DB:       0,
//	}
//	store, err := redis.NewStore(cfg)
//
// # Snapshot Provider
//
// The snapshot provider holds the latest geometry pushed by the host UI and
// forwards scroll and marker effects back through an effect sink:
//
//	provider := snapshot.NewProvider()
//	provider.SetEffectSink(sessionID, func(e snapshot.Effect) { send(e) })
//	provider.Apply(latestSnapshot)
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := standard.NewStandardLogger()
//	logger.Info("Scroll position restored", map[string]interface{}{
//	    "document_key": "doc-a",
//	    "offset":       1420.5,
//	})
package infrastructure
