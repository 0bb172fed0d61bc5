// Package backend opens the repositories selected by configuration.
package backend

import (
	"context"
	"log"
	"time"

	"smartstore-backend/admin"
	"smartstore-backend/config"
	"smartstore-backend/customer"
	"smartstore-backend/order"
	"smartstore-backend/store/memstore"
	"smartstore-backend/store/mongostore"
)

const connectTimeout = 10 * time.Second

type Backend struct {
	Customers customer.Repository
	Admins    admin.Repository
	Orders    order.Repository

	close func()
}

// Open connects to MongoDB and ensures its indexes, or builds the in-memory
// store when cfg.StoreDriver is memory.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("Using in-memory store; data is lost on exit")
		return &Backend{
			Customers: memstore.NewCustomerRepo(),
			Admins:    memstore.NewAdminRepo(),
			Orders:    memstore.NewOrderRepo(),
			close:     func() {},
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	log.Printf("Connecting to MongoDB database %q", cfg.MongoDatabase)
	client, db, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Backend{
		Customers: mongostore.NewCustomerRepo(db),
		Admins:    mongostore.NewAdminRepo(db),
		Orders:    mongostore.NewOrderRepo(db),
		close: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("mongo disconnect: %v", err)
			}
		},
	}, nil
}

func (b *Backend) Close() {
	b.close()
}
