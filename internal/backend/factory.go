package backend

import (
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Open builds the transaction store named by the configuration. The caller
// owns the returned store and must Close it on shutdown.
func Open(cfg *config.Config, logger *log.Logger) (TransactionStore, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case JSONBackend:
		store, err := storage.NewJSONTransactionStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize json backend: %w", err)
		}
		logger.Info("initialized json backend", log.FieldBackend, t.String(), "data_dir", cfg.DataDir)
		return store, nil

	case SQLiteBackend:
		store, err := storage.NewSQLiteTransactionStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("initialized sqlite backend", log.FieldBackend, t.String(), "db_path", cfg.SQLiteDBPath)
		return store, nil

	case MemoryBackend:
		logger.Info("initialized memory backend", log.FieldBackend, t.String())
		return storage.NewMemoryTransactionStore(), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", t)
	}
}
