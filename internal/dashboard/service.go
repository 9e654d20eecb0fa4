package dashboard

import (
	"context"
	"fmt"
	"time"

	"brotech_admin/internal/model"
	"brotech_admin/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recentMessagesLimit = 5

type MessageSource interface {
	List(ctx context.Context, q store.Query) ([]model.ContactMessage, error)
	Count(ctx context.Context, q store.Query) (int, error)
}

type PlanSource interface {
	List(ctx context.Context, q store.Query) ([]model.PricingPlan, error)
}

// Stats is everything the dashboard screen renders.
type Stats struct {
	NewMessages     int                    `json:"newMessages"`
	TotalMessages   int                    `json:"totalMessages"`
	TotalPlans      int                    `json:"totalPlans"`
	MostPopularPlan string                 `json:"mostPopularPlan"`
	RecentMessages  []model.ContactMessage `json:"recentMessages"`
	Weekly          []Bucket               `json:"weekly"`
	Chart           Chart                  `json:"chart"`
}

type Service struct {
	messages MessageSource
	plans    PlanSource
	loc      *time.Location
	now      func() time.Time
}

func NewService(messages MessageSource, plans PlanSource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{messages: messages, plans: plans, loc: loc, now: time.Now}
}

// Load fires every dashboard query concurrently and waits for all of them.
// If any query fails the whole load fails and no partial stats are returned.
func (s *Service) Load(ctx context.Context) (*Stats, error) {
	now := s.now().In(s.loc)
	days := LastWeek(now)

	var (
		stats   Stats
		all     []model.ContactMessage
		plans   []model.PricingPlan
		popular []model.PricingPlan
		weekly  = make([]Bucket, len(days))
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.messages.Count(gctx, store.NewQuery().
			Where("createdAt", store.OpGte, now.Add(-NewMessageWindow)))
		stats.NewMessages = n
		return wrap("new messages", err)
	})
	g.Go(func() error {
		var err error
		all, err = s.messages.List(gctx, store.NewQuery())
		return wrap("all messages", err)
	})
	g.Go(func() error {
		var err error
		plans, err = s.plans.List(gctx, store.NewQuery())
		return wrap("pricing plans", err)
	})
	g.Go(func() error {
		var err error
		popular, err = s.plans.List(gctx, store.NewQuery().
			Where("mostPopular", store.OpEq, true).
			Limit(1))
		return wrap("popular plan", err)
	})
	g.Go(func() error {
		var err error
		stats.RecentMessages, err = s.messages.List(gctx, store.NewQuery().
			OrderBy("createdAt", true).
			Limit(recentMessagesLimit))
		return wrap("recent messages", err)
	})

	// Her gün için ayrı aralık sorgusu
	for i, d := range days {
		weekly[i].Label = d.Label
		g.Go(func() error {
			n, err := s.messages.Count(gctx, store.NewQuery().
				Where("createdAt", store.OpGte, d.Start).
				Where("createdAt", store.OpLt, d.End))
			weekly[i].Count = n
			return wrap("messages on "+d.Start.Format(time.DateOnly), err)
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("dashboard load failed", zap.Error(err))
		return nil, err
	}

	stats.TotalMessages = TotalCount(all)
	stats.TotalPlans = len(plans)
	stats.MostPopularPlan = MostPopularPlanTitle(popular)
	stats.Weekly = weekly
	stats.Chart = NewChart(weekly, ChartHeight)
	return &stats, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}
