package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okondratev/devdocs-qa/internal/bootstrap"
	"github.com/okondratev/devdocs-qa/internal/config"
	"github.com/okondratev/devdocs-qa/internal/observability/logging"
	"github.com/okondratev/devdocs-qa/internal/observability/metrics"
)

const serviceName = "worker"

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.New(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", workerMetrics.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsMux,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeQuestionSubmitted(ctx, func(handlerCtx context.Context, answerID, question string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		workerMetrics.StartQuestion()
		start := time.Now()

		result, err := app.QA.Process(processCtx, question)
		if err != nil {
			workerMetrics.FinishQuestion(serviceName, "invalid", time.Since(start))
			return err
		}

		// The answer keeps the identifier handed out at submission time
		// so clients can poll for it.
		result.ID = answerID
		if err := app.AnswerLog.Save(processCtx, result); err != nil {
			workerMetrics.FinishQuestion(serviceName, "save_failed", time.Since(start))
			return err
		}

		workerMetrics.FinishQuestion(serviceName, string(result.Status), time.Since(start))
		return nil
	})
	if err != nil {
		slog.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}
