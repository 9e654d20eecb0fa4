package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"brotech_admin/internal/model"
	"brotech_admin/internal/session"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/config"
	"brotech_admin/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listerFunc func(ctx context.Context, q store.Query) ([]model.ContactMessage, error)

func (f listerFunc) List(ctx context.Context, q store.Query) ([]model.ContactMessage, error) {
	return f(ctx, q)
}

type mailerFunc func(ctx context.Context, to string, data email.DailyDigestData) error

func (f mailerFunc) SendDailyDigest(ctx context.Context, to string, data email.DailyDigestData) error {
	return f(ctx, to, data)
}

type purgerFunc func(ctx context.Context) (int64, error)

func (f purgerFunc) PurgeRevoked(ctx context.Context) (int64, error) { return f(ctx) }

var now = time.Date(2024, 6, 1, 19, 0, 0, 0, time.UTC)

func sample() []model.ContactMessage {
	return []model.ContactMessage{
		{Name: "Old", CreatedAt: now.Add(-72 * time.Hour)},
		{Name: "Ann", Email: "ann@x.io", Subject: "Hi", CreatedAt: now.Add(-2 * time.Hour)},
		{Name: "Bob", Email: "bob@x.io", Subject: "Quote", CreatedAt: now.Add(-time.Hour)},
	}
}

func TestBuildDigest(t *testing.T) {
	d := BuildDigest(sample(), now)
	assert.Equal(t, 2, d.NewMessages)
	assert.Equal(t, 3, d.TotalMessages)
	require.Len(t, d.Messages, 2)
	assert.Equal(t, "Bob", d.Messages[0].Name)
	require.Len(t, d.Week, 7)
	assert.Equal(t, "Sat", d.Week[6].Label)
	assert.Equal(t, 2, d.Week[6].Count)
	assert.Equal(t, 1, d.Week[3].Count)
}

func TestDigestJob_SendsToEveryOperator(t *testing.T) {
	var to []string
	job := &DigestJob{
		Messages: listerFunc(func(ctx context.Context, q store.Query) ([]model.ContactMessage, error) {
			assert.True(t, session.Authenticated(ctx))
			return sample(), nil
		}),
		Operators: func(ctx context.Context) ([]model.User, error) {
			return []model.User{{Email: "a@brotech.io", DisplayName: "A"}, {Email: "b@brotech.io"}}, nil
		},
		Mailer: mailerFunc(func(ctx context.Context, addr string, data email.DailyDigestData) error {
			to = append(to, addr)
			if addr == "b@brotech.io" {
				return errors.New("bounced")
			}
			assert.Equal(t, "A", data.DisplayName)
			return nil
		}),
		Location: time.UTC,
		now:      func() time.Time { return now },
	}

	job.Run()
	assert.Equal(t, []string{"a@brotech.io", "b@brotech.io"}, to)

	// aynı gün ikinci çalıştırma atlanır
	job.Run()
	assert.Len(t, to, 2)
}

func TestDigestJob_SkipsWithoutNewMessages(t *testing.T) {
	job := &DigestJob{
		Messages: listerFunc(func(ctx context.Context, q store.Query) ([]model.ContactMessage, error) {
			return sample()[:1], nil
		}),
		Operators: func(ctx context.Context) ([]model.User, error) {
			t.Fatal("operators must not be loaded")
			return nil, nil
		},
		Mailer: mailerFunc(func(ctx context.Context, to string, data email.DailyDigestData) error {
			t.Fatal("nothing should be sent")
			return nil
		}),
		now: func() time.Time { return now },
	}
	n, err := job.send(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	noMail := &DigestJob{}
	n, err = noMail.send(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInit(t *testing.T) {
	c, err := Init(config.CronConfig{DigestSpec: "0 19 * * *"}, time.UTC, &DigestJob{}, purgerFunc(func(ctx context.Context) (int64, error) {
		return 0, nil
	}))
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 2)

	_, err = Init(config.CronConfig{DigestSpec: "not a spec"}, nil, &DigestJob{}, nil)
	assert.Error(t, err)
}

func TestRunPurge(t *testing.T) {
	called := false
	runPurge(purgerFunc(func(ctx context.Context) (int64, error) {
		called = true
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return 3, nil
	}))
	assert.True(t, called)
}
