package cleanupworker

import (
	"context"
	"time"

	"mock-interview-backend/config"
	"mock-interview-backend/lib/interview"
	baseworker "mock-interview-backend/lib/utils/base-worker"
)

type Cleaner interface {
	CleanupIdle(ttl time.Duration) int
}

func StartWorker(ctx context.Context) {
	i := newWorker(interview.Instance, config.Conf.Interview.SessionTTL, config.Conf.Interview.CleanupInterval)
	go i.Run(ctx, i.handle)
}

func newWorker(cleaner Cleaner, ttl, interval time.Duration) *impl {
	return &impl{
		BaseImpl: *baseworker.NewInstance("InterviewCleanupWorker", interval, interval),
		cleaner:  cleaner,
		ttl:      ttl,
	}
}

type impl struct {
	baseworker.BaseImpl
	cleaner Cleaner
	ttl     time.Duration
}

func (i impl) handle(ctx context.Context) {
	removed := i.cleaner.CleanupIdle(i.ttl)
	if removed > 0 {
		i.GetLogger().Infof("выгружено неактивных сессий интервью: %d", removed)
	}
}
