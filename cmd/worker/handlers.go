package main

import (
	"github.com/hibiken/asynq"

	"shopdesk-backend/internal/infrastructure/queue/handlers"
	"shopdesk-backend/internal/shared"
	"shopdesk-backend/pkg/container"
)

// registerHandlers binds every task type to its handler. The sweep handler
// drives the same executor the manual API endpoint uses, so at-most-once
// semantics hold across both entry points.
func registerHandlers(mux *asynq.ServeMux, c *container.Container) {
	mux.HandleFunc(shared.TypeAutoReorderSweep, handlers.ReorderSweepHandler(c.ReorderRepo, c.Executor))
	mux.HandleFunc(shared.TypeWarmSnapshot, handlers.WarmSnapshotHandler(c.ReorderRepo, c.InventoryService))
}
