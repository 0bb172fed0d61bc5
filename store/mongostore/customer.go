package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"smartstore-backend/entity"
	"smartstore-backend/store"
)

// excludePassword is the projection used for every read except login.
var excludePassword = bson.M{"password": 0}

type CustomerRepo struct {
	coll *mongo.Collection
}

func NewCustomerRepo(db *mongo.Database) *CustomerRepo {
	return &CustomerRepo{coll: db.Collection(usersCollection)}
}

func normalizeCustomer(c *entity.Customer) {
	if c.Wishlist == nil {
		c.Wishlist = []primitive.ObjectID{}
	}
	if c.Orders == nil {
		c.Orders = []primitive.ObjectID{}
	}
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	normalizeCustomer(c)
	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return translate(err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CustomerRepo) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&c); err != nil {
		return nil, translate(err)
	}
	normalizeCustomer(&c)
	return &c, nil
}

func (r *CustomerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(excludePassword))
}

func (r *CustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CustomerRepo) List(ctx context.Context) ([]entity.Customer, error) {
	opts := options.Find().SetProjection(excludePassword).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	customers := []entity.Customer{}
	if err := cur.All(ctx, &customers); err != nil {
		return nil, err
	}
	for i := range customers {
		normalizeCustomer(&customers[i])
	}
	return customers, nil
}

func (r *CustomerRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, u entity.ProfileUpdate) (*entity.Customer, error) {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Phone != nil {
		set["phone"] = *u.Phone
	}
	if u.Gender != nil {
		set["gender"] = *u.Gender
	}
	if u.DateOfBirth != nil {
		set["dob"] = *u.DateOfBirth
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(excludePassword)
	var c entity.Customer
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		return nil, translate(err)
	}
	normalizeCustomer(&c)
	return &c, nil
}

func (r *CustomerRepo) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) SetWishlist(ctx context.Context, id primitive.ObjectID, wishlist []primitive.ObjectID) error {
	if wishlist == nil {
		wishlist = []primitive.ObjectID{}
	}
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"wishlist": wishlist}})
}

func (r *CustomerRepo) AppendOrder(ctx context.Context, id, orderID primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$push": bson.M{"orders": orderID}})
}

func (r *CustomerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
