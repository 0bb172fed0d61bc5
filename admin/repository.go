package admin

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/entity"
)

type Repository interface {
	Create(ctx context.Context, a *entity.Admin) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Admin, error)
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
}
