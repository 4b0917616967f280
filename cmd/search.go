package cmd

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tvrenamer/tvrenamer/config"
	"github.com/tvrenamer/tvrenamer/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// searchCmd searches tmdb for shows matching a name
var searchCmd = &cobra.Command{
	Use:        "search",
	Short:      "search for a tv show",
	Long:       `search for a tv show`,
	Args:       cobra.MinimumNArgs(1),
	ArgAliases: []string{"show name"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}
		if err := cfg.Validate(); err != nil {
			log.Fatal("invalid configuration", zap.Error(err))
		}

		m, err := newRenameManager(cfg, "")
		if err != nil {
			log.Fatal("failed to create session", zap.Error(err))
		}

		ctx := logger.WithCtx(context.Background(), log)
		shows, err := m.SearchShows(ctx, strings.Join(args, " "))
		if err != nil {
			log.Fatal("failed to search shows", zap.Error(err))
		}

		for _, show := range shows {
			b, err := json.Marshal(show)
			if err != nil {
				log.Fatal("failed to marshal show", zap.Error(err))
			}
			log.Info(string(b))
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
