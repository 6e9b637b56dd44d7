package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bkocis/berghain-challenges-listenlabs-ai/client"
	"github.com/bkocis/berghain-challenges-listenlabs-ai/store"
)

var (
	playerID   string // Player UUID issued by the challenge
	scenarioID int    // Challenge scenario number (1, 2, or 3)
)

// newGameCmd registers a game with the challenge server and records it
// locally so `play` can resume it later.
var newGameCmd = &cobra.Command{
	Use:   "new-game",
	Short: "Register a new game with the challenge server",
	Run: func(cmd *cobra.Command, args []string) {
		if playerID == "" {
			logrus.Fatalf("Player ID not provided")
		}
		if scenarioID < 1 || scenarioID > 3 {
			logrus.Fatalf("Scenario must be 1, 2, or 3 (got %d)", scenarioID)
		}

		api := client.New(baseURL)
		resp, err := api.NewGame(context.Background(), playerID, scenarioID)
		if err != nil {
			logrus.Fatalf("Registering game: %v", err)
		}

		db, err := store.Open(dbPath)
		if err != nil {
			logrus.Fatalf("Opening store: %v", err)
		}
		defer db.Close()

		rec := gameRecordFromResponse(resp, playerID, scenarioID)
		if err := db.SaveGame(rec); err != nil {
			logrus.Fatalf("Saving game: %v", err)
		}

		logrus.Infof("Registered game %s (scenario %d)", resp.GameID, scenarioID)
		fmt.Println(resp.GameID)
		for _, c := range resp.Constraints {
			fmt.Printf("  %s: at least %d\n", c.Attribute, c.MinCount)
		}
	},
}

// gameRecordFromResponse converts a registration reply into its stored form.
func gameRecordFromResponse(resp *client.NewGameResponse, playerID string, scenarioID int) *store.GameRecord {
	rec := &store.GameRecord{
		GameID:     resp.GameID,
		PlayerID:   playerID,
		ScenarioID: scenarioID,
	}
	for _, c := range resp.Constraints {
		rec.Constraints = append(rec.Constraints, store.ConstraintRecord{
			Attribute: c.Attribute,
			MinCount:  c.MinCount,
		})
	}
	if resp.AttributeStatistics != nil {
		rec.Frequencies = resp.AttributeStatistics.RelativeFrequencies
		rec.Correlation = resp.AttributeStatistics.Correlations
	}
	return rec
}

func init() {
	newGameCmd.Flags().StringVar(&playerID, "player-id", "", "Player UUID issued by the challenge")
	newGameCmd.Flags().IntVar(&scenarioID, "scenario", 1, "Scenario number (1, 2, or 3)")
	newGameCmd.Flags().StringVar(&baseURL, "base-url", client.DefaultBaseURL, "Challenge server base URL")

	rootCmd.AddCommand(newGameCmd)
}
