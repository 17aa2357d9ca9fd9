package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"shopdesk-backend/pkg/container"
)

// startServices verifies infrastructure connectivity and exposes the
// worker's health endpoint.
func startServices(c *container.Container) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.DB.HealthCheck(ctx); err != nil {
		return err
	}
	if err := c.Cache.Ping(ctx); err != nil {
		// The worker can start without redis; asynq will retry connecting.
		log.Printf("[Startup] Redis unreachable (non-critical): %v", err)
	}

	go startHealthCheckServer()
	return nil
}

// startHealthCheckServer serves liveness/readiness probes on :9999
func startHealthCheckServer() {
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"UP","service":"shopdesk-worker"}`))
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"READY"}`))
	})

	log.Println("[Health] Starting health check server on :9999")
	if err := http.ListenAndServe(":9999", nil); err != nil {
		log.Printf("[Health] Failed to start: %v", err)
	}
}
