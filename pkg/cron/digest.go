// pkg/cron/digest.go

package cron

import (
	"context"
	"sync"
	"time"

	"brotech_admin/internal/dashboard"
	"brotech_admin/internal/messages"
	"brotech_admin/internal/model"
	"brotech_admin/internal/session"
	"brotech_admin/internal/store"
	"brotech_admin/pkg/email"

	"go.uber.org/zap"
)

const digestPreviewLimit = 10

type MessageLister interface {
	List(ctx context.Context, q store.Query) ([]model.ContactMessage, error)
}

type DigestMailer interface {
	SendDailyDigest(ctx context.Context, to string, data email.DailyDigestData) error
}

// systemIdentity is the identity scheduled jobs read the store with.
var systemIdentity = &session.Identity{UserID: "system", Email: "cron@localhost", DisplayName: "Scheduler"}

// DigestJob emails every operator a summary of the last 24 hours.
type DigestJob struct {
	Messages  MessageLister
	Operators func(ctx context.Context) ([]model.User, error)
	Mailer    DigestMailer
	Location  *time.Location

	now         func() time.Time
	mutex       sync.Mutex
	lastRunTime time.Time
}

// Run is the cron entry point.
func (j *DigestJob) Run() {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	// Son çalışma zamanını kontrol et
	if !j.lastRunTime.IsZero() && j.clock().Sub(j.lastRunTime) < 23*time.Hour {
		zap.L().Info("Digest already sent today, skipping")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sent, err := j.send(ctx)
	if err != nil {
		zap.L().Error("Digest failed", zap.Error(err))
		return
	}
	j.lastRunTime = j.clock()
	zap.L().Info("Digest finished", zap.Int("sent", sent))
}

func (j *DigestJob) clock() time.Time {
	if j.now != nil {
		return j.now()
	}
	return time.Now()
}

func (j *DigestJob) send(ctx context.Context) (int, error) {
	if j.Mailer == nil {
		zap.L().Debug("Email is not configured, digest skipped")
		return 0, nil
	}

	loc := j.Location
	if loc == nil {
		loc = time.Local
	}
	now := j.clock().In(loc)

	all, err := j.Messages.List(session.WithIdentity(ctx, systemIdentity), store.NewQuery())
	if err != nil {
		return 0, err
	}

	data := BuildDigest(all, now)
	if data.NewMessages == 0 {
		zap.L().Info("No new messages in the last 24h, digest skipped")
		return 0, nil
	}

	operators, err := j.Operators(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, op := range operators {
		data.DisplayName = op.DisplayName
		if err := j.Mailer.SendDailyDigest(ctx, op.Email, data); err != nil {
			zap.L().Error("Error sending digest", zap.String("to", op.Email), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// BuildDigest summarizes a snapshot of all messages as of now.
func BuildDigest(all []model.ContactMessage, now time.Time) email.DailyDigestData {
	cutoff := now.Add(-dashboard.NewMessageWindow)

	recent := messages.Sort(all, messages.SortDesc)
	preview := make([]email.DigestMessage, 0, digestPreviewLimit)
	for _, m := range recent {
		if m.CreatedAt.Before(cutoff) || len(preview) == digestPreviewLimit {
			break
		}
		preview = append(preview, email.DigestMessage{Name: m.Name, Email: m.Email, Subject: m.Subject})
	}

	hist := dashboard.WeeklyHistogram(all, now)
	week := make([]email.DigestDay, len(hist))
	for i, b := range hist {
		week[i] = email.DigestDay{Label: b.Label, Count: b.Count}
	}

	return email.DailyDigestData{
		Date:          now,
		NewMessages:   dashboard.CountSince(all, cutoff),
		TotalMessages: dashboard.TotalCount(all),
		Messages:      preview,
		Week:          week,
	}
}
