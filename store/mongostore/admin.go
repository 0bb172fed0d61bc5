package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"smartstore-backend/entity"
)

type AdminRepo struct {
	coll *mongo.Collection
}

func NewAdminRepo(db *mongo.Database) *AdminRepo {
	return &AdminRepo{coll: db.Collection(adminsCollection)}
}

func (r *AdminRepo) Create(ctx context.Context, a *entity.Admin) error {
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return translate(err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AdminRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Admin, error) {
	var a entity.Admin
	opts := options.FindOne().SetProjection(excludePassword)
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AdminRepo) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var a entity.Admin
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}
