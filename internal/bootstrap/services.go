package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/devxconsultancy/assess-ui-api/config"
	"github.com/devxconsultancy/assess-ui-api/internal/adapters/authroles"
	redisadapter "github.com/devxconsultancy/assess-ui-api/internal/adapters/redis"
	"github.com/devxconsultancy/assess-ui-api/internal/core"
	"github.com/devxconsultancy/assess-ui-api/internal/data"
	"github.com/devxconsultancy/assess-ui-api/internal/service"
)

// ServiceContainer holds the constructed service layer.
type ServiceContainer struct {
	Colleges *service.CollegeService
	Resolver *service.IdentityResolver
	Gate     *service.DomainGate
	Binder   *service.BindingEngine
	Sessions *service.SessionService
	Auth     *service.AuthService
}

// ServicesConfig groups dependencies for BuildServices.
type ServicesConfig struct {
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Config      config.AppConfig
	Logger      *slog.Logger
}

// BuildServices wires repositories, adapters, and services. The college
// repository is wrapped in a Redis read-through cache when a client is
// available; the login path hits it on every request.
func BuildServices(cfg ServicesConfig) (*ServiceContainer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var colleges core.CollegeRepository = data.NewCollegeRepo(cfg.DB)
	if cfg.RedisClient != nil {
		colleges = redisadapter.NewCollegeCache(cfg.RedisClient, colleges).
			WithTTL(cfg.Config.Redis.CollegeTTL)
	}
	users := data.NewUserRepo(cfg.DB)

	provider, err := BuildAuthProvider(cfg.Config.Auth, logger)
	if err != nil {
		return nil, fmt.Errorf("build auth provider: %w", err)
	}
	codec, err := BuildTokenCodec(cfg.Config.Auth.Session)
	if err != nil {
		return nil, fmt.Errorf("build token codec: %w", err)
	}

	rules := authroles.ClassificationFromLists(
		cfg.Config.Auth.StaffDomainSuffix,
		cfg.Config.Auth.AdminEmails,
		cfg.Config.Auth.StaffEmails,
	)

	resolver := service.NewIdentityResolver(service.IdentityResolverOptions{
		Users:      users,
		Classifier: authroles.StaticClassifier{},
		Rules:      rules,
	})
	gate := service.NewDomainGate(service.DomainGateOptions{
		Colleges: colleges,
		Users:    users,
		Logger:   logger,
	})
	binder := service.NewBindingEngine(users)
	sessions := service.NewSessionService(codec)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Resolver: resolver,
		Gate:     gate,
		Binder:   binder,
		Sessions: sessions,
		Users:    users,
		Colleges: colleges,
		Logger:   logger,
	})

	return &ServiceContainer{
		Colleges: service.NewCollegeService(colleges),
		Resolver: resolver,
		Gate:     gate,
		Binder:   binder,
		Sessions: sessions,
		Auth:     auth,
	}, nil
}
