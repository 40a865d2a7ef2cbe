// Package cmd 提供 stratus 命令行工具的所有子命令实现。
// 本文件实现 serve 命令：以 HTTP 服务方式接收部署请求，供 CI 系统调用。
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oriys/stratus/internal/api"
	"github.com/oriys/stratus/internal/awscloud"
	"github.com/oriys/stratus/internal/config"
	"github.com/oriys/stratus/internal/deploy"
	"github.com/oriys/stratus/internal/events"
	"github.com/oriys/stratus/internal/metrics"
	"github.com/oriys/stratus/internal/telemetry"
)

// serveCmd 是 serve 命令的 cobra.Command 实例。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP deployment endpoint",
	Long: `Run stratus as an HTTP service.

POST /v1/deploy accepts a multipart request with a "spec" JSON field and an
"artifact" file field, and runs the same deployment pipeline as the deploy
command. /metrics exposes Prometheus metrics and /healthz a health check.`,
	RunE: runServe,
}

var serveListen string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "监听地址（覆盖配置文件中的 server.listen）")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Server.Listen = serveListen
	}

	logger := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format)

	tel, err := telemetry.New(ctx, cfg.Telemetry.Enabled, cfg.Telemetry.Endpoint, Version)
	if err != nil {
		return err
	}
	defer tel.Shutdown(context.Background())

	awsCfg, err := awscloud.NewConfig(ctx, cfg.AWS.Region, cfg.AWS.Profile)
	if err != nil {
		return err
	}

	opts := []deploy.Option{deploy.WithMetrics(metrics.New(nil))}
	if cfg.Events.NATSURL != "" {
		bus, err := events.NewBus(cfg.Events.NATSURL, logger)
		if err != nil {
			return err
		}
		defer bus.Close()
		opts = append(opts, deploy.WithEvents(bus))
	}

	orchestrator := deploy.NewOrchestrator(
		awscloud.NewFunctionClient(awsCfg),
		awscloud.NewObjectClient(awsCfg),
		logger,
		opts...,
	)

	server := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: api.NewServer(orchestrator, logger, cfg.Server.AuthToken, cfg.Defaults.SpecDefaults()).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("listen", cfg.Server.Listen).Info("Deployment endpoint listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadServeConfig 加载 serve 模式配置：
// 指定了 --config 时从该文件加载，否则尝试默认路径，缺失时使用内置默认值。
func loadServeConfig() (*config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", cfgFile, err)
		}
		return cfg, nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		if cfg, err := config.Load(home + "/.stratus.yaml"); err == nil {
			return cfg, nil
		}
	}
	return config.Default(), nil
}
