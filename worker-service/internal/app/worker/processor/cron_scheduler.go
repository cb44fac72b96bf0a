package processor

import (
	"context"

	"bistrobot/pkg/logger"
	"bistrobot/worker-service/internal/app/worker/service"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически исполняет отложенные публикации
type CronScheduler struct {
	cron        *cron.Cron
	dispatchSvc service.DispatchServiceInterface
}

func NewCronScheduler(dispatchSvc service.DispatchServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:        cron.New(),
		dispatchSvc: dispatchSvc,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.dispatchSvc.DispatchDue(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to dispatch due replies")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Cron scheduler started")

	// Подхватываем задания, накопившиеся пока сервис был остановлен
	if err := s.dispatchSvc.DispatchDue(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial dispatch run failed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
