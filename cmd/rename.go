package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tvrenamer/tvrenamer/config"
	"github.com/tvrenamer/tvrenamer/pkg/logger"
	"github.com/tvrenamer/tvrenamer/pkg/renamer"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// undoJournal is where the rename command keeps its undo record so a later
// invocation can unwind the batch.
const undoJournal = ".tvrenamer-undo.json"

// renameCmd scans a directory, previews names, and renames in one pass
var renameCmd = &cobra.Command{
	Use:        "rename",
	Short:      "Rename tv episode files at a path",
	Long:       `Rename tv episode files at a path`,
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

		path := args[0]
		m, err := newRenameManager(cfg, path)
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
		for _, failed := range summary.Failed {
			log.Warnw("no name proposed", "file", failed.Name, "reason", failed.Reason)
		}

		renamed, err := m.Rename(ctx)
		if err != nil {
			log.Fatal("failed to rename", zap.Error(err))
		}
		log.Infow("renamed files", "count", renamed)

		stats := m.Stats()
		log.Infow("metadata stats", "lookups", stats.TotalLookups, "cacheHits", stats.TotalHits, "hitRate", stats.CacheHitRate)

		batch, ok := m.LastUndoBatch()
		if !ok {
			return
		}

		b, err := json.Marshal(batch)
		if err != nil {
			log.Fatal("failed to marshal undo record", zap.Error(err))
		}
		journal := filepath.Join(path, undoJournal)
		if err := os.WriteFile(journal, b, 0o644); err != nil {
			log.Fatal("failed to write undo record", zap.Error(err))
		}
		log.Infow("undo record written", "path", journal)
	},
}

func init() {
	renameCmd.Flags().StringVarP(&methodName, "method", "m", "metadata", "renaming method: metadata, number, name, extension, date")
	renameCmd.Flags().StringVarP(&showName, "show", "s", "", "show name for metadata naming")
	renameCmd.Flags().IntVarP(&seasonNum, "season", "n", 0, "season number for metadata naming")
	rootCmd.AddCommand(renameCmd)
}
