// Package job runs the explorer's background tasks on asynq.
//
// The HTTP process both enqueues tasks (Client) and works them (server), with
// Redis as the broker.
package job

import (
	"github.com/deppfellow/block-explorer/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// JobService holds the asynq client and worker server.
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
	deps   *Dependencies
}

// RedisOpt builds the asynq connection options from cfg.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := RedisOpt(cfg.Redis)

	// The client only enqueues; it is safe to use before Start.
	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Job.Concurrency,
			// Weighted priority: critical is picked six times as often as
			// low. The warm-up task lives on critical since it sits on the
			// read path of /snapshots/latest.
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
			// Route asynq's own logs through zerolog; below warn it is chatty.
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Mux returns the task routes. InitHandlers must have been called.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWarmLatestSnapshot, j.handleWarmLatestSnapshotTask)
	return mux
}

// Start launches the workers in the background. Unlike Run it does not
// block or install its own signal handling; Stop is called from shutdown.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	return j.server.Start(j.Mux())
}

// Stop waits for in-flight tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
