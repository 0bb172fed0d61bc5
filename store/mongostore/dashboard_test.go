package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartstore-backend/order"
)

func TestDashboardPipelineShape(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 4, 5, 0, time.UTC)
	p := dashboardPipeline(order.Today(now), order.ThisWeek(now))
	require.Len(t, p, 2)
	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, "$facet", p[1][0].Key)

	_, err := bson.Marshal(bson.D{{Key: "pipeline", Value: p}})
	require.NoError(t, err)
}

func TestDashboardResultDecode(t *testing.T) {
	sales, err := primitive.ParseDecimal128("75.50")
	require.NoError(t, err)
	raw, err := bson.Marshal(bson.M{
		"today": bson.A{bson.M{"_id": nil, "count": int32(3), "sales": sales, "pending": int32(1), "delivered": int32(1)}},
		"week":  bson.A{bson.M{"_id": nil, "count": int32(4), "sales": 175.5}},
	})
	require.NoError(t, err)

	var res dashboardResult
	require.NoError(t, bson.Unmarshal(raw, &res))
	d, err := res.toDashboard()
	require.NoError(t, err)

	assert.Equal(t, 3, d.TotalOrdersToday)
	assert.Equal(t, "75.5", d.TotalSales.String())
	assert.Equal(t, 1, d.PendingOrders)
	assert.Equal(t, 1, d.DeliveredOrders)
	assert.Equal(t, 4, d.TotalOrdersThisWeek)
	assert.Equal(t, "175.5", d.TotalSalesThisWeek.String())
}

func TestDashboardResultEmptyWindows(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"today": bson.A{}, "week": bson.A{}})
	require.NoError(t, err)

	var res dashboardResult
	require.NoError(t, bson.Unmarshal(raw, &res))
	d, err := res.toDashboard()
	require.NoError(t, err)
	assert.Equal(t, order.Dashboard{}, d)
	assert.Equal(t, "0", d.TotalSales.String())
}
