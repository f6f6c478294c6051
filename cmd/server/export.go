package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/analytics"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export-performance",
	Short: "Write the miner performance report to an xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		core, cleanup, err := buildCore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		rows, err := core.Analytics.GetMinerPerformance(cmd.Context())
		if err != nil {
			return err
		}
		data, err := analytics.MinerPerformanceXLSX(rows)
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		common.GetLogger().Info("Exported miner performance",
			zap.String("file", exportOut),
			zap.Int("miners", len(rows)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", analytics.MinerPerformanceFilename, "output file")
}
