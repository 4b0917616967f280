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

var showSeasonNum int

// showCmd resolves a show by name and prints its details, optionally with one
// season's episode list
var showCmd = &cobra.Command{
	Use:        "show",
	Short:      "get details for a tv show",
	Long:       `get details for a tv show`,
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
		selection, err := m.SelectShow(ctx, strings.Join(args, " "), showSeasonNum)
		if err != nil {
			log.Fatal("failed to resolve show", zap.Error(err))
		}

		b, err := json.Marshal(selection)
		if err != nil {
			log.Fatal("failed to marshal show", zap.Error(err))
		}
		log.Info(string(b))

		if showSeasonNum == 0 {
			return
		}

		season, err := m.SeasonDetails(ctx, selection.ShowID, showSeasonNum)
		if err != nil {
			log.Fatal("failed to resolve season", zap.Error(err))
		}

		for _, episode := range season.Episodes {
			log.Infow("episode", "number", episode.EpisodeNumber, "name", episode.Name, "aired", episode.AirDate)
		}
	},
}

func init() {
	showCmd.Flags().IntVarP(&showSeasonNum, "season", "n", 0, "season number to list episodes for")
	rootCmd.AddCommand(showCmd)
}
