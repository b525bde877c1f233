package bootstrap

import (
	"fmt"

	"Vitrin/internal/cli/repo"
	fsrepo "Vitrin/internal/cli/repo/fs"
	reposqlite "Vitrin/internal/cli/repo/sqlite"
	"Vitrin/internal/config"
)

// OpenStorage открывает локальное key-value хранилище, выбранное в конфиге,
// и возвращает (store, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenStorage(cfg *config.Config) (repo.KeyValueStore, func() error, error) {
	switch cfg.Storage {
	case "sqlite":
		s, err := reposqlite.Open(cfg.StoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return s, s.Close, nil
	case "", "fs":
		return fsrepo.New(cfg.StoragePath), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
