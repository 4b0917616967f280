package cmd

import (
	"context"

	"github.com/tvrenamer/tvrenamer/config"
	"github.com/tvrenamer/tvrenamer/pkg/logger"
	"github.com/tvrenamer/tvrenamer/pkg/renamer"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	methodName string
	showName   string
	seasonNum  int
)

// previewCmd scans a directory and prints the proposed names without renaming
var previewCmd = &cobra.Command{
	Use:        "preview",
	Short:      "Preview proposed names for files at a path",
	Long:       `Preview proposed names for files at a path`,
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"path to TV files"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		method, err := renamer.ParseMethod(methodName)
		if err != nil {
			log.Fatal("invalid method", zap.Error(err))
		}
		if method == renamer.MethodMetadataMatch {
			if err := cfg.Validate(); err != nil {
				log.Fatal("invalid configuration", zap.Error(err))
			}
		}

		m, err := newRenameManager(cfg, args[0])
		if err != nil {
			log.Fatal("failed to create session", zap.Error(err))
		}

		if _, err := m.Scan(ctx); err != nil {
			log.Fatal("failed to scan directory", zap.Error(err))
		}

		if err := selectShow(ctx, m, method); err != nil {
			log.Fatal("failed to select show", zap.Error(err))
		}

		summary, err := m.Preview(ctx, method)
		if err != nil {
			log.Fatal("failed to preview", zap.Error(err))
		}

		for _, entry := range m.Files() {
			log.Info(entry)
		}
		for _, failed := range summary.Failed {
			log.Warnw("no name proposed", "file", failed.Name, "reason", failed.Reason)
		}

		stats := m.Stats()
		log.Infow("metadata stats", "lookups", stats.TotalLookups, "cacheHits", stats.TotalHits, "hitRate", stats.CacheHitRate)
	},
}

func init() {
	previewCmd.Flags().StringVarP(&methodName, "method", "m", "metadata", "renaming method: metadata, number, name, extension, date")
	previewCmd.Flags().StringVarP(&showName, "show", "s", "", "show name for metadata naming")
	previewCmd.Flags().IntVarP(&seasonNum, "season", "n", 0, "season number for metadata naming")
	rootCmd.AddCommand(previewCmd)
}
