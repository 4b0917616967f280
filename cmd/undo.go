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

// undoCmd restores the names recorded by the last rename at a path
var undoCmd = &cobra.Command{
	Use:        "undo",
	Short:      "Undo the last rename at a path",
	Long:       `Undo the last rename at a path`,
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"path to TV files"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		path := args[0]
		journal := filepath.Join(path, undoJournal)
		b, err := os.ReadFile(journal)
		if err != nil {
			log.Fatal("no undo record found", zap.Error(err))
		}

		var batch renamer.UndoBatch
		if err := json.Unmarshal(b, &batch); err != nil {
			log.Fatal("failed to read undo record", zap.Error(err))
		}

		m, err := newRenameManager(cfg, path)
		if err != nil {
			log.Fatal("failed to create session", zap.Error(err))
		}

		m.RestoreUndoBatch(&batch)
		restored, err := m.UndoLast(ctx)
		if err != nil {
			log.Fatal("failed to undo", zap.Error(err))
		}
		log.Infow("restored files", "count", restored)

		if err := os.Remove(journal); err != nil {
			log.Warnw("failed to remove undo record", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
}
