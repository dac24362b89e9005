package handlers

import (
	"jewelbox/internal/auth"
	"jewelbox/internal/config"
	"jewelbox/internal/events"
	"jewelbox/internal/payment"
	"jewelbox/internal/repos"
	"jewelbox/internal/services"
)

type Deps struct {
	DB   *repos.DB
	Auth *services.AuthService

	AuthHandler      *AuthHandler
	ProductHandler   *ProductHandler
	CategoryHandler  *CategoryHandler
	SearchHandler    *SearchHandler
	InventoryHandler *InventoryHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	HealthHandler    *HealthHandler
}

func NewDeps(db *repos.DB, cfg *config.Config, pay payment.Processor, pub events.Publisher) *Deps {
	userRepo := repos.NewUserRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := services.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, pay, pub)

	return &Deps{
		DB:               db,
		Auth:             authSvc,
		AuthHandler:      &AuthHandler{Auth: authSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invRepo},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc},
		HealthHandler:    &HealthHandler{DB: db},
	}
}
