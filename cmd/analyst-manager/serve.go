// cmd/analyst-manager/serve.go
package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"startup-analyst/internal/common/camunda"
	"startup-analyst/internal/common/config"
	"startup-analyst/internal/jobworker"
	"startup-analyst/internal/server"

	"github.com/spf13/cobra"
)

var withAgentTasks bool

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and, when camunda is enabled, the Zeebe job workers",
		RunE:  runServe,
	}
	cmd.Flags().BoolVar(&withAgentTasks, "agent-tasks", false, "Also open one Zeebe worker per agent task type")

	rootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	log := a.log

	var uploader server.Uploader
	if a.storage != nil {
		uploader = a.storage
	}
	srv := server.New(a.cfg.Server, a.orch, uploader, log)
	for name, check := range a.checks {
		srv.AddReadinessCheck(name, check)
	}

	var workers *camunda.Workers
	if a.cfg.Camunda.Enabled {
		client, err := camunda.Connect(ctx, camunda.ClientConfigFrom(a.cfg.Camunda), log)
		if err != nil {
			return err
		}
		defer client.Close()
		srv.AddReadinessCheck("zeebe", client.HealthCheck)

		workers = camunda.NewWorkers(client.Zeebe(), log)
		opts := camunda.WorkerOptions{
			MaxJobsActive: a.cfg.Camunda.MaxJobsActive,
			Timeout:       config.GetDuration(a.cfg.Camunda.Timeout),
		}
		workers.Open(jobworker.TaskTypeAnalyzeStartup, jobworker.NewAnalyzeHandler(a.orch, opts.Timeout, log), opts)
		if withAgentTasks {
			for taskType, handler := range jobworker.AgentHandlers(a.agents, a.catalogue, log) {
				workers.Open(taskType, handler, opts)
			}
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(a.cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if workers != nil {
		workers.Close()
	}

	log.Info("analyst manager stopped", nil)
	return nil
}
