package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"devsrctool/internal/config"
	"devsrctool/internal/logger"
	"devsrctool/pkg/api"
	"devsrctool/pkg/domain"
)

var (
	flagNamespace uint32
	flagIndex     uint32
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List persisted source records for a pipeline",
	RunE:  runSources,
}

func init() {
	sourcesCmd.Flags().Uint32Var(&flagNamespace, "namespace", 1, "pipeline namespace id")
	sourcesCmd.Flags().Uint32Var(&flagIndex, "index", 1, "pipeline index (must not be zero)")
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	pipeline, err := domain.NewPipelineID(flagNamespace, flagIndex)
	if err != nil {
		return err
	}

	svc, err := api.NewService(cfg, logger.NewNop())
	if err != nil {
		return err
	}
	defer svc.Close()

	records, err := svc.ListSources(pipeline)
	if err != nil {
		return err
	}
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
	}
	return nil
}
