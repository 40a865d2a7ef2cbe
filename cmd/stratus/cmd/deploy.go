// Package cmd 提供 stratus 命令行工具的所有子命令实现。
// 本文件实现 deploy 命令：执行一次完整的部署调和，支持 watch 模式持续重部署。
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oriys/stratus/internal/awscloud"
	"github.com/oriys/stratus/internal/deploy"
	"github.com/oriys/stratus/internal/events"
	"github.com/oriys/stratus/internal/telemetry"
)

// deployCmd 是 deploy 命令的 cobra.Command 实例。
var deployCmd = &cobra.Command{
	Use:   "deploy <name>",
	Short: "Deploy an artifact (create the function if new, update if it exists)",
	Long: `Deploy a packaged artifact to the function platform.

The artifact is optionally staged to object storage first. The command then
checks whether the target function exists:
- If it doesn't exist, a single create call carries code and configuration.
- If it exists, configuration is updated first, then code (which performs
  publishing when --publish is set).
When --alias is given the alias is upserted to point at the new version.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

var (
	deployFlags specFlags
	deployWatch bool
)

func init() {
	rootCmd.AddCommand(deployCmd)
	deployFlags.register(deployCmd)
	deployCmd.Flags().BoolVarP(&deployWatch, "watch", "w", false, "监听产物文件变化并自动重新部署")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := telemetry.NewLogger(viper.GetString("log_level"), "text")
	orchestrator, closeFn, err := newOrchestrator(ctx, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	deployOnce := func() error {
		spec := deployFlags.buildSpec(cmd, name)
		artifact, err := deployFlags.readArtifact()
		if err != nil {
			return err
		}

		cmd.Printf("🚀 Deploying '%s' (%d bytes)...\n", name, len(artifact.Data))
		result, err := orchestrator.Run(ctx, spec, artifact)
		if err != nil {
			return err
		}

		if result.Created {
			cmd.Printf("✅ Function '%s' created", name)
		} else {
			cmd.Printf("✅ Function '%s' updated", name)
		}
		if result.Version != "" {
			cmd.Printf(" (version %s)", result.Version)
		}
		cmd.Println()
		if spec.Alias != "" {
			cmd.Printf("🔗 Alias '%s' → version %s\n", spec.Alias, result.Version)
		}
		return nil
	}

	if !deployWatch {
		return deployOnce()
	}

	if err := deployOnce(); err != nil {
		// watch 模式下首次失败不退出，等待下一次文件变更
		cmd.PrintErrf("⚠️  Deploy failed: %v\n", err)
	}
	return watchAndRedeploy(cmd, deployFlags.file, deployOnce)
}

// watchAndRedeploy 监听产物文件所在目录，文件被重写后重新部署。
// 构建工具通常以“写临时文件再改名”的方式产出，所以监听目录而非单个文件。
func watchAndRedeploy(cmd *cobra.Command, file string, deployOnce func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	cmd.Printf("👀 Watching %s for changes (Ctrl-C to stop)...\n", file)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// 简单去抖：编辑器和构建工具会对同一文件连续触发多个事件
	var debounce *time.Timer
	redeploy := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(file) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(500*time.Millisecond, func() {
				select {
				case redeploy <- struct{}{}:
				default:
				}
			})
		case <-redeploy:
			if err := deployOnce(); err != nil {
				cmd.PrintErrf("⚠️  Deploy failed: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("⚠️  Watch error: %v\n", err)
		case <-sigCh:
			cmd.Println("👋 Stopped watching")
			return nil
		}
	}
}

// newOrchestrator 构造绑定到当前凭证配置的部署编排器。
// 返回的清理函数关闭可选的事件总线连接。
func newOrchestrator(ctx context.Context, logger *logrus.Logger) (*deploy.Orchestrator, func(), error) {
	awsCfg, err := awscloud.NewConfig(ctx, viper.GetString("region"), viper.GetString("profile"))
	if err != nil {
		return nil, nil, err
	}

	functions := awscloud.NewFunctionClient(awsCfg)
	objects := awscloud.NewObjectClient(awsCfg)

	var opts []deploy.Option
	closeFn := func() {}
	if natsURL := viper.GetString("nats_url"); natsURL != "" {
		bus, err := events.NewBus(natsURL, logger)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, deploy.WithEvents(bus))
		closeFn = func() { bus.Close() }
	}

	return deploy.NewOrchestrator(functions, objects, logger, opts...), closeFn, nil
}
