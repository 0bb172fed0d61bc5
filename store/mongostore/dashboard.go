package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"smartstore-backend/entity"
	"smartstore-backend/order"
)

var _ order.Aggregator = (*OrderRepo)(nil)

type windowTotals struct {
	Count     int64       `bson:"count"`
	Sales     interface{} `bson:"sales"`
	Pending   int64       `bson:"pending"`
	Delivered int64       `bson:"delivered"`
}

type dashboardResult struct {
	Today []windowTotals `bson:"today"`
	Week  []windowTotals `bson:"week"`
}

func createdWithin(w order.Window) bson.M {
	return bson.M{"createdAt": bson.M{"$gte": w.From, "$lte": w.To}}
}

func countStatus(s entity.OrderStatus) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", string(s)}}, 1, 0}}}
}

// dashboardPipeline counts and sums both windows in one round trip.
func dashboardPipeline(today, week order.Window) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{createdWithin(today), createdWithin(week)}}}},
		{{Key: "$facet", Value: bson.M{
			"today": bson.A{
				bson.M{"$match": createdWithin(today)},
				bson.M{"$group": bson.M{
					"_id":       nil,
					"count":     bson.M{"$sum": 1},
					"sales":     bson.M{"$sum": "$totalAmount"},
					"pending":   countStatus(entity.OrderPending),
					"delivered": countStatus(entity.OrderDelivered),
				}},
			},
			"week": bson.A{
				bson.M{"$match": createdWithin(week)},
				bson.M{"$group": bson.M{
					"_id":   nil,
					"count": bson.M{"$sum": 1},
					"sales": bson.M{"$sum": "$totalAmount"},
				}},
			},
		}}},
	}
}

func (r dashboardResult) toDashboard() (order.Dashboard, error) {
	var d order.Dashboard
	if len(r.Today) > 0 {
		t := r.Today[0]
		sales, err := decodeAmount(t.Sales)
		if err != nil {
			return order.Dashboard{}, fmt.Errorf("today's sales: %w", err)
		}
		d.TotalOrdersToday = int(t.Count)
		d.TotalSales = entity.NewMoney(sales)
		d.PendingOrders = int(t.Pending)
		d.DeliveredOrders = int(t.Delivered)
	}
	if len(r.Week) > 0 {
		w := r.Week[0]
		sales, err := decodeAmount(w.Sales)
		if err != nil {
			return order.Dashboard{}, fmt.Errorf("week's sales: %w", err)
		}
		d.TotalOrdersThisWeek = int(w.Count)
		d.TotalSalesThisWeek = entity.NewMoney(sales)
	}
	return d, nil
}

// Dashboard runs the counters as a server-side aggregation.
func (r *OrderRepo) Dashboard(ctx context.Context, today, week order.Window) (order.Dashboard, error) {
	cur, err := r.coll.Aggregate(ctx, dashboardPipeline(today, week))
	if err != nil {
		return order.Dashboard{}, err
	}
	var results []dashboardResult
	if err := cur.All(ctx, &results); err != nil {
		return order.Dashboard{}, err
	}
	if len(results) == 0 {
		return order.Dashboard{}, nil
	}
	return results[0].toDashboard()
}
