package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/jobdesk/jobdesk-go/config"
	redisadapter "github.com/jobdesk/jobdesk-go/internal/adapters/redis"
	"github.com/jobdesk/jobdesk-go/internal/adapters/restapi"
	"github.com/jobdesk/jobdesk-go/internal/adapters/tokenfile"
	"github.com/jobdesk/jobdesk-go/internal/adapters/tokenmem"
	"github.com/jobdesk/jobdesk-go/internal/observability/statsd"
	"github.com/jobdesk/jobdesk-go/internal/ports"
	"github.com/jobdesk/jobdesk-go/internal/session"
)

// SessionConfig contains configuration for building the session subsystem.
type SessionConfig struct {
	Config  config.AppConfig
	Logger  *slog.Logger
	Profile ports.ProfileResetter // optional
}

// BuildSession wires the gateway, token store, and session controller from
// configuration. Returns nil if configuration is unusable.
func BuildSession(cfg SessionConfig) *session.Controller {
	gateway, err := restapi.NewGateway(restapi.Config{
		BaseURL:    cfg.Config.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Config.API.Timeout},
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("session disabled: invalid API configuration", "error", err)
		}
		return nil
	}

	tokens := buildTokenStore(cfg)
	if tokens == nil {
		return nil
	}

	metrics := buildMetrics(cfg)

	return session.NewController(session.ControllerOptions{
		Gateway: gateway,
		Tokens:  tokens,
		Store:   session.NewStore(),
		Logger:  cfg.Logger,
		Metrics: metrics,
		Profile: cfg.Profile,
	})
}

//nolint:ireturn // the backend is selected at runtime from configuration.
func buildTokenStore(cfg SessionConfig) ports.TokenStore {
	switch cfg.Config.Storage.Backend {
	case config.StorageBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Config.Storage.Redis.Addr,
			Password: cfg.Config.Storage.Redis.Password,
			DB:       cfg.Config.Storage.Redis.DB,
		})
		return redisadapter.NewTokenStoreWithKey(client, cfg.Config.Storage.Redis.Key)

	case config.StorageBackendMemory:
		return tokenmem.NewStore()

	default:
		store, err := tokenfile.NewStore(cfg.Config.Storage.FilePath)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("session disabled: token file location unavailable", "error", err)
			}
			return nil
		}
		return store
	}
}

func buildMetrics(cfg SessionConfig) statsd.Sink {
	if !cfg.Config.Observability.Metrics.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.Config.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Config.Observability.Metrics.Prefix,
		Logger:  cfg.Logger,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("metrics disabled: statsd unreachable", "error", err)
		}
		return nil
	}
	return client
}
