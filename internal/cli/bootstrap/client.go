package bootstrap

import (
	"fmt"

	"Vitrin/internal/cli/api"
	"Vitrin/internal/cli/auth"
	"Vitrin/internal/config"

	"go.uber.org/zap"
)

// OpenClient собирает клиентскую сессию: хранилище → auth.Store → api.Client.
// Токен подхватывается из хранилища при каждом запросе.
func OpenClient(cfg *config.Config, logger *zap.SugaredLogger) (*api.Client, func() error, error) {
	kv, cleanup, err := OpenStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	holder := auth.NewStore(kv, logger)
	c, err := api.NewClient(cfg.APIBaseURL, holder, logger)
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("create api client: %w", err)
	}
	return c, cleanup, nil
}
