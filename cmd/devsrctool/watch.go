package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"devsrctool/internal/config"
	"devsrctool/internal/logger"
	"devsrctool/internal/sink"
	"devsrctool/pkg/api"
)

var (
	flagDevToolsURL string
	flagTarget      string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Attach to a target and stream resolved source records",
	Long:  "Starts a debugging session, attaches to a Chromium target over CDP, and prints one createSourceActor JSON payload per line for every eligible script source.",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagDevToolsURL, "devtools-url", "", "devtools endpoint (overrides config)")
	watchCmd.Flags().StringVar(&flagTarget, "target", "", "target id to attach (default: first available)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDevToolsURL != "" {
		cfg.DevTools.URL = flagDevToolsURL
	}

	log := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Writers: cfg.Log.Writer,
		File:    cfg.Log.File,
	})

	svc, err := api.NewService(cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	id, err := svc.StartSession()
	if err != nil {
		return err
	}
	control, err := svc.SubscribeControl(id)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.AttachTarget(ctx, id, flagTarget); err != nil {
		return err
	}
	log.Info("开始监听脚本源", "devtools", cfg.DevTools.URL, "sessionID", string(id))

	for {
		select {
		case <-ctx.Done():
			return svc.StopSession(id)
		case msg, ok := <-control:
			if !ok {
				return nil
			}
			raw, err := sink.Encode(msg)
			if err != nil {
				log.Err(err, "编码控制消息失败")
				continue
			}
			fmt.Println(string(raw))
		}
	}
}
