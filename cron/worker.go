package cron

import (
	"context"
	"fmt"
	"time"

	"servicehub/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const TypeBookingsPoll = "bookings:poll"

// Poller is the work a bookings:poll task performs.
type Poller interface {
	PollAll(ctx context.Context) error
}

// Worker runs the periodic poll: a scheduler enqueues bookings:poll and an
// asynq server executes it.
type Worker struct {
	server      *asynq.Server
	scheduler   *asynq.Scheduler
	logger      *zap.Logger
	stopMonitor context.CancelFunc // ends the Redis connection monitor
}

func NewPollTask() *asynq.Task {
	return asynq.NewTask(TypeBookingsPoll, nil, asynq.MaxRetry(0))
}

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// StartPollWorker schedules bookings:poll every interval and starts
// processing it in the background.
func StartPollWorker(p Poller, interval time.Duration, logger *zap.Logger) (*Worker, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid poll interval %s", interval)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := redisOpt()
	srv := asynq.NewServer(opts, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingsPoll, HandlePollTask(p, logger))

	scheduler := asynq.NewScheduler(opts, &asynq.SchedulerOpts{Logger: logger.Sugar()})
	// A tick that finds the previous poll still queued is dropped.
	if _, err := scheduler.Register("@every "+interval.String(), NewPollTask(), asynq.Unique(interval)); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", TypeBookingsPoll, err)
	}

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start poll worker: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("failed to start poll scheduler: %w", err)
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	go monitorRedisConnection(monitorCtx, opts, 30*time.Second, logger)

	logger.Info("poll worker started", zap.Duration("interval", interval))
	return &Worker{server: srv, scheduler: scheduler, logger: logger, stopMonitor: stopMonitor}, nil
}

// Shutdown stops scheduling and waits for a running poll to finish.
func (w *Worker) Shutdown() {
	w.stopMonitor()
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("poll worker stopped")
}

func HandlePollTask(p Poller, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		start := time.Now()
		if err := p.PollAll(ctx); err != nil {
			logger.Warn("bookings poll failed", zap.Error(err))
			return err
		}
		logger.Debug("bookings poll finished", zap.Duration("took", time.Since(start)))
		return nil
	}
}

// monitorRedisConnection pings the queue database every interval so a lost
// connection shows up in the logs. It returns once ctx is done.
func monitorRedisConnection(ctx context.Context, opts asynq.RedisClientOpt, every time.Duration, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	defer client.Close()

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			if err := client.Ping(pingCtx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("poll worker lost Redis connection", zap.Error(err))
			}
			cancel()
		}
	}
}
