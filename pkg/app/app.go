package app

import (
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/pkg/cache"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/amirasaad/fintrack/pkg/service/wallet"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow          repository.UnitOfWork
	SessionCache cache.SessionCache
	Logger       *slog.Logger
}

type App struct {
	Deps               *Deps
	Config             *config.App
	AuthService        *auth.Service
	UserService        *user.Service
	WalletService      *wallet.Service
	CategoryService    *category.Service
	TransactionService *transaction.Service
}

func New(deps *Deps, cfg *config.App) *App {
	var cacheTTL time.Duration
	if cfg.Redis != nil {
		cacheTTL = cfg.Redis.SessionTTL
	}
	return &App{
		Deps:               deps,
		Config:             cfg,
		AuthService:        auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.SessionCache, cacheTTL, deps.Logger),
		UserService:        user.New(deps.Uow, deps.Logger),
		WalletService:      wallet.New(deps.Uow, deps.Logger),
		CategoryService:    category.New(deps.Uow, deps.Logger),
		TransactionService: transaction.New(deps.Uow, deps.Logger),
	}
}
