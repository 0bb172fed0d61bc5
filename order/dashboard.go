package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"smartstore-backend/apperr"
	"smartstore-backend/entity"
)

// Window is a closed time interval [From, To].
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today spans 00:00:00.000 to 23:59:59.999 of now's calendar day in now's location.
func Today(now time.Time) Window {
	start := startOfDay(now)
	return Window{From: start, To: start.AddDate(0, 0, 1).Add(-time.Millisecond)}
}

// ThisWeek spans Monday 00:00:00.000 to Sunday 23:59:59.999 of the week holding now.
func ThisWeek(now time.Time) Window {
	sinceMonday := (int(now.Weekday()) + 6) % 7
	start := startOfDay(now).AddDate(0, 0, -sinceMonday)
	return Window{From: start, To: start.AddDate(0, 0, 7).Add(-time.Millisecond)}
}

type Dashboard struct {
	TotalOrdersToday    int          `json:"totalOrdersToday"`
	TotalSales          entity.Money `json:"totalSales"`
	PendingOrders       int          `json:"pendingOrders"`
	DeliveredOrders     int          `json:"deliveredOrders"`
	TotalOrdersThisWeek int          `json:"totalOrdersThisWeek"`
	TotalSalesThisWeek  entity.Money `json:"totalSalesThisWeek"`
}

// Aggregator is implemented by repositories that compute the dashboard in
// the store instead of returning the orders of the window.
type Aggregator interface {
	Dashboard(ctx context.Context, today, week Window) (Dashboard, error)
}

// Summarize counts and sums orders per window. Pending and delivered counts
// cover today only. Empty windows yield zeros.
func Summarize(orders []entity.Order, today, week Window) Dashboard {
	sales, weekSales := decimal.Zero, decimal.Zero
	var d Dashboard
	for _, o := range orders {
		if week.Contains(o.CreatedAt) {
			d.TotalOrdersThisWeek++
			weekSales = weekSales.Add(o.TotalAmount.Decimal)
		}
		if !today.Contains(o.CreatedAt) {
			continue
		}
		d.TotalOrdersToday++
		sales = sales.Add(o.TotalAmount.Decimal)
		switch o.Status {
		case entity.OrderPending:
			d.PendingOrders++
		case entity.OrderDelivered:
			d.DeliveredOrders++
		}
	}
	d.TotalSales = entity.NewMoney(sales)
	d.TotalSalesThisWeek = entity.NewMoney(weekSales)
	return d
}

// Dashboard computes the counters for the windows around the current instant.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	now := s.now()
	today, week := Today(now), ThisWeek(now)

	if agg, ok := s.repo.(Aggregator); ok {
		d, err := agg.Dashboard(ctx, today, week)
		if err != nil {
			return Dashboard{}, apperr.Internal("something went wrong while fetching dashboard data", err)
		}
		return d, nil
	}

	from, to := week.From, week.To
	if today.From.Before(from) {
		from = today.From
	}
	if today.To.After(to) {
		to = today.To
	}
	orders, err := s.repo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return Dashboard{}, apperr.Internal("something went wrong while fetching dashboard data", err)
	}
	return Summarize(orders, today, week), nil
}
