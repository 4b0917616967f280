package cmd

import (
	"context"

	"github.com/tvrenamer/tvrenamer/config"
	"github.com/tvrenamer/tvrenamer/pkg/logger"
	"github.com/tvrenamer/tvrenamer/pkg/renamer"
	"github.com/tvrenamer/tvrenamer/server"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the rename server",
	Long:  `start the rename server`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}
		if err := cfg.Validate(); err != nil {
			log.Fatal("invalid configuration", zap.Error(err))
		}

		m, err := newRenameManager(cfg, cfg.Library.TVDir)
		if err != nil {
			log.Fatal("failed to create session", zap.Error(err))
		}

		ctx, cancel := context.WithCancel(logger.WithCtx(context.Background(), log))
		defer cancel()

		worker := renamer.NewWorker(16)
		srv := server.New(log, m, worker)
		log.Error(srv.Serve(ctx, cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
