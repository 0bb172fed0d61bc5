// Command createadmin provisions the operator account from ADMIN_NAME,
// ADMIN_EMAIL and ADMIN_PASSWORD, or from flags when given.
package main

import (
	"context"
	"flag"
	"log"

	"smartstore-backend/admin"
	"smartstore-backend/auth"
	"smartstore-backend/config"
	"smartstore-backend/store/backend"
)

func main() {
	cfg, err := config.LoadForProvisioning()
	if err != nil {
		log.Fatal(err)
	}

	name := flag.String("name", cfg.Admin.Name, "operator display name")
	email := flag.String("email", cfg.Admin.Email, "operator email")
	password := flag.String("password", cfg.Admin.Password, "operator password")
	flag.Parse()

	ctx := context.Background()
	stores, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer stores.Close()

	p := admin.NewProvisioner(stores.Admins, auth.NewPasswordHasher(cfg.BcryptCost))
	created, err := p.Bootstrap(ctx, *name, *email, *password)
	if err != nil {
		log.Fatal(err)
	}
	if !created {
		log.Printf("Admin %s already exists", *email)
		return
	}
	log.Printf("Admin %s created", *email)
}
