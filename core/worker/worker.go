package worker

import (
	"context"

	"marketplace-api/core/config"
	"marketplace-api/core/constants"
	"marketplace-api/core/logger"

	"github.com/hibiken/asynq"
)

// Enqueuer is the narrow client interface services depend on, so tests can
// substitute a fake.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task) error
}

// Client wraps the asynq client for enqueueing background tasks
type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := c.client.EnqueueContext(ctx, task, asynq.Queue(constants.QueueNotifications))
	if err != nil {
		logger.Error("Worker:Enqueue", "type", task.Type(), "error", err)
		return err
	}
	logger.Debug("Worker:Enqueued", "type", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Server runs the asynq worker and the periodic task scheduler
type Server struct {
	srv       *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func NewServer(cfg *config.Config) *Server {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
		Queues: map[string]int{
			constants.QueueNotifications: 6,
			constants.QueueDefault:       4,
		},
	})

	scheduler := asynq.NewScheduler(redisOpt, nil)

	return &Server{
		srv:       srv,
		scheduler: scheduler,
		mux:       asynq.NewServeMux(),
	}
}

// Mux exposes the handler mux so modules can register their task handlers
func (s *Server) Mux() *asynq.ServeMux {
	return s.mux
}

// SchedulePeriodic registers a task on a cron-style spec, e.g. "@every 10m"
func (s *Server) SchedulePeriodic(spec string, task *asynq.Task) error {
	entryID, err := s.scheduler.Register(spec, task, asynq.Queue(constants.QueueDefault))
	if err != nil {
		return err
	}
	logger.Info("Worker:ScheduledPeriodic", "type", task.Type(), "spec", spec, "entry_id", entryID)
	return nil
}

// Start runs the worker server and scheduler in background goroutines
func (s *Server) Start() error {
	if err := s.srv.Start(s.mux); err != nil {
		return err
	}
	if err := s.scheduler.Start(); err != nil {
		s.srv.Shutdown()
		return err
	}
	return nil
}

func (s *Server) Shutdown() {
	s.scheduler.Shutdown()
	s.srv.Shutdown()
}
