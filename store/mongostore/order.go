package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"smartstore-backend/entity"
	"smartstore-backend/store"
)

// orderDocument is the stored shape of an order. Amounts are written as
// Decimal128; older documents may hold a double or an integer.
type orderDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Customer    primitive.ObjectID   `bson:"user"`
	Products    []primitive.ObjectID `bson:"products"`
	TotalAmount interface{}          `bson:"totalAmount"`
	PaymentMode string               `bson:"paymentMode"`
	Status      string               `bson:"status"`
	CreatedAt   time.Time            `bson:"createdAt"`
}

func toDocument(o *entity.Order) (*orderDocument, error) {
	amount, err := primitive.ParseDecimal128(o.TotalAmount.String())
	if err != nil {
		return nil, fmt.Errorf("encode totalAmount %s: %w", o.TotalAmount, err)
	}
	return &orderDocument{
		ID:          o.ID,
		Customer:    o.Customer,
		Products:    o.Products,
		TotalAmount: amount,
		PaymentMode: string(o.PaymentMode),
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}, nil
}

func decodeAmount(v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, nil
	case primitive.Decimal128:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	}
	return decimal.Zero, fmt.Errorf("unsupported totalAmount type %T", v)
}

func (d *orderDocument) toEntity() (entity.Order, error) {
	amount, err := decodeAmount(d.TotalAmount)
	if err != nil {
		return entity.Order{}, fmt.Errorf("order %s: %w", d.ID.Hex(), err)
	}
	status := entity.OrderStatus(d.Status)
	if strings.EqualFold(d.Status, string(entity.OrderCancelled)) {
		status = entity.OrderCancelled
	}
	mode := entity.PaymentMode(d.PaymentMode)
	if mode == "" {
		mode = entity.PaymentCash
	}
	products := d.Products
	if products == nil {
		products = []primitive.ObjectID{}
	}
	return entity.Order{
		ID:          d.ID,
		Customer:    d.Customer,
		Products:    products,
		TotalAmount: entity.NewMoney(amount),
		PaymentMode: mode,
		Status:      status,
		CreatedAt:   d.CreatedAt,
	}, nil
}

type OrderRepo struct {
	coll *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{coll: db.Collection(ordersCollection)}
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	doc, err := toDocument(o)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return translate(err)
}

func (r *OrderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	o, err := doc.toEntity()
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) find(ctx context.Context, filter bson.M) ([]entity.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	orders := make([]entity.Order, 0, len(docs))
	for i := range docs {
		o, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]entity.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]entity.Order, error) {
	return r.find(ctx, bson.M{"user": customerID})
}

func (r *OrderRepo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Order, error) {
	return r.find(ctx, bson.M{"createdAt": bson.M{"$gte": from, "$lte": to}})
}

func (r *OrderRepo) SetStatus(ctx context.Context, id primitive.ObjectID, from []entity.OrderStatus, status entity.OrderStatus) (*entity.Order, error) {
	filter := bson.M{"_id": id}
	if len(from) > 0 {
		filter["status"] = bson.M{"$in": from}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc orderDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) && len(from) > 0 {
		n, cerr := r.coll.CountDocuments(ctx, bson.M{"_id": id})
		if cerr != nil {
			return nil, cerr
		}
		if n > 0 {
			return nil, store.ErrConflict
		}
	}
	if err != nil {
		return nil, translate(err)
	}
	o, err := doc.toEntity()
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
