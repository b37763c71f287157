package router

import (
	"github.com/velora-shop/velora-api/internal/application"
	"github.com/velora-shop/velora-api/internal/container"
	pginfra "github.com/velora-shop/velora-api/internal/infrastructure/postgres"
	handlers "github.com/velora-shop/velora-api/internal/interface/http"
	"github.com/velora-shop/velora-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Call once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	productRepo := pginfra.NewProductRepository(pool)
	orderRepo := pginfra.NewOrderRepository(pool)

	userSvc := application.NewUserService(userRepo, container.GetTokens(), logger)
	cartSvc := application.NewCartService(userRepo, logger)
	productSvc := application.NewProductService(
		productRepo,
		container.GetRedis(),
		cfg.ProductCacheTTL,
		container.GetES(),
		cfg.ESProductsIndex,
		logger,
	)
	orderSvc := application.NewOrderService(
		orderRepo,
		userRepo,
		productRepo,
		container.GetPayments(),
		container.GetRabbitPub(),
		cfg.PaymentCurrency,
		logger,
	)

	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	cartHandler := handlers.NewCartHandler(cartSvc, logger)
	productHandler := handlers.NewProductHandler(productSvc, logger)
	uploadHandler := handlers.NewUploadHandler(container.GetUploader(), logger)
	orderHandler := handlers.NewOrderHandler(orderSvc, logger)

	r.Add(modules.NewUserModule(userHandler))
	r.Add(modules.NewCartModule(cartHandler))
	r.Add(modules.NewProductModule(productHandler, uploadHandler))
	r.Add(modules.NewOrderModule(orderHandler))
}
