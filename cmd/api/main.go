package main

import (
	"log"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもいい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.WishlistItem{},
		&model.SessionRecord{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	sessionStore := infraRepo.NewSessionGormStore(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//セッションカート
	cartService := cart.NewService(sessionStore)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	productUC := usecase.NewProductUsecase(productRepo, orderRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(cartService, productRepo, sessionStore)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, productRepo, cartService, validator.NewShippingValidator())
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Product:  handler.NewProductHandler(productUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
		Order:    handler.NewOrderHandler(orderUC),
		Wishlist: handler.NewWishlistHandler(wishlistUC),
		Admin:    handler.NewAdminProductHandler(productUC),
	}

	e := server.New(cfg, handlers)

	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	if err := server.Start(e, addr); err != nil {
		log.Fatal(err)
	}
}
