package main

import (
	"context"
	"log"

	"smartstore-backend/admin"
	"smartstore-backend/auth"
	"smartstore-backend/config"
	"smartstore-backend/customer"
	"smartstore-backend/handler"
	"smartstore-backend/order"
	"smartstore-backend/store/backend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	stores, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer stores.Close()

	tokens, err := auth.NewTokens(cfg.JWTSecret)
	if err != nil {
		log.Fatal(err)
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	customers := customer.NewService(stores.Customers, hasher, tokens)
	admins := admin.NewService(stores.Admins, hasher, tokens)
	orders := order.NewService(stores.Orders, stores.Customers)

	if cfg.Admin.Enabled() {
		created, err := admin.NewProvisioner(stores.Admins, hasher).Bootstrap(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal(err)
		}
		if created {
			log.Printf("Admin %s created", cfg.Admin.Email)
		}
	}

	r := handler.NewRouter(handler.Deps{
		Customers:      customers,
		Admins:         admins,
		Orders:         orders,
		CustomerLoader: stores.Customers,
		AdminLoader:    stores.Admins,
		Tokens:         tokens,
		Carrier:        auth.SessionCarrier{Secure: cfg.CookieSecure},
		AllowedOrigins: cfg.AllowedOrigins,
	})

	log.Printf("Listening on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
