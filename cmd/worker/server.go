package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"shopdesk-backend/internal/shared"
	"shopdesk-backend/pkg/container"
)

// asynqServer wraps asynq.Server with shutdown handling
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates and starts the worker server
func setupAsynqServer(c *container.Container) *asynqServer {
	mux := asynq.NewServeMux()
	registerHandlers(mux, c)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: c.Config.Redis.Host, Password: c.Config.Redis.Password, DB: c.Config.Redis.DB},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueReorder:   10,
				shared.QueueInventory: 5,
			},
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown stops the server, waiting up to 30s for in-flight tasks
func (s *asynqServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("[Worker] Shutting down (waiting max 30s)...")
	done := make(chan struct{})
	go func() {
		s.Server.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[Worker] Gracefully stopped")
	case <-ctx.Done():
		log.Println("[Worker] Shutdown timeout exceeded")
	}
}
