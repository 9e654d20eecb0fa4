// pkg/cron/cron.go

package cron

import (
	"context"
	"time"

	"brotech_admin/pkg/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const purgeSpec = "@hourly"

// Purger deletes revocation rows of tokens that expired anyway.
type Purger interface {
	PurgeRevoked(ctx context.Context) (int64, error)
}

// Init registers the scheduled jobs and starts the scheduler. The caller
// stops it on shutdown.
func Init(cfg config.CronConfig, loc *time.Location, digest *DigestJob, purger Purger) (*cron.Cron, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))

	if digest != nil {
		// Her gün DIGEST_CRON zamanında çalışacak
		if _, err := c.AddFunc(cfg.DigestSpec, digest.Run); err != nil {
			return nil, err
		}
	}

	if purger != nil {
		if _, err := c.AddFunc(purgeSpec, func() { runPurge(purger) }); err != nil {
			return nil, err
		}
	}

	c.Start()
	zap.L().Info("Cron initialized", zap.String("digest", cfg.DigestSpec), zap.String("purge", purgeSpec))
	return c, nil
}

func runPurge(p Purger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := p.PurgeRevoked(ctx)
	if err != nil {
		zap.L().Error("Could not purge revoked tokens", zap.Error(err))
		return
	}
	if n > 0 {
		zap.L().Info("Purged revoked tokens", zap.Int64("count", n))
	}
}
