package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bkocis/berghain-challenges-listenlabs-ai/client"
	"github.com/bkocis/berghain-challenges-listenlabs-ai/door"
	"github.com/bkocis/berghain-challenges-listenlabs-ai/door/trace"
	"github.com/bkocis/berghain-challenges-listenlabs-ai/game"
	"github.com/bkocis/berghain-challenges-listenlabs-ai/store"
)

var (
	gameID     string // Game UUID returned by new-game
	policyName string // Admission policy name
	specFile   string // Optional scenario YAML with threshold overrides
)

// playCmd plays one attempt of a previously registered game against the
// live server and records the outcome locally.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one attempt of a registered game",
	Run: func(cmd *cobra.Command, args []string) {
		if gameID == "" {
			logrus.Fatalf("Game ID not provided")
		}
		if !door.IsValidPolicy(policyName) {
			logrus.Fatalf("Unknown policy %q; valid policies: always-accept, constraint-aware", policyName)
		}

		db, err := store.Open(dbPath)
		if err != nil {
			logrus.Fatalf("Opening store: %v", err)
		}
		defer db.Close()

		rec, err := db.Game(gameID)
		if err != nil {
			logrus.Fatalf("Loading game %s (run new-game first): %v", gameID, err)
		}

		thresholds := door.DefaultThresholds()
		if specFile != "" {
			spec, err := door.LoadScenarioSpec(specFile)
			if err != nil {
				logrus.Fatalf("Loading scenario spec: %v", err)
			}
			thresholds = spec.EffectiveThresholds()
		}

		session := sessionFromRecord(rec)
		policy := door.NewPolicy(policyName, thresholds)
		runner := game.NewRunner(client.New(baseURL), policy, session)

		logrus.Infof("Playing game %s with policy %s", gameID, policyName)
		result, err := runner.Play(context.Background(), gameID)
		if err != nil {
			logrus.Fatalf("Attempt failed: %v", err)
		}

		if err := recordResult(db, gameID, result); err != nil {
			logrus.Fatalf("Recording attempt: %v", err)
		}
		printResult(result)
	},
}

// sessionFromRecord rebuilds a fresh Session from a stored registration.
func sessionFromRecord(rec *store.GameRecord) *door.Session {
	constraints := make([]door.Constraint, 0, len(rec.Constraints))
	for _, c := range rec.Constraints {
		constraints = append(constraints, door.Constraint{
			Attribute: c.Attribute,
			MinCount:  c.MinCount,
		})
	}
	var stats *door.Statistics
	if rec.Frequencies != nil || rec.Correlation != nil {
		stats = &door.Statistics{
			RelativeFrequencies: rec.Frequencies,
			Correlations:        rec.Correlation,
		}
	}
	return door.NewSession(door.DefaultCapacity, door.DefaultRejectionBudget, constraints, stats)
}

// recordResult persists the attempt and its leaderboard entry.
func recordResult(db *store.Store, gameID string, result *game.Result) error {
	attempt := &store.Attempt{
		GameID:          gameID,
		Status:          result.Status,
		AdmittedCount:   result.AdmittedCount,
		RejectedCount:   result.RejectedCount,
		AttributeCounts: result.AttributeCounts,
		ConstraintsMet:  result.ConstraintsMet,
	}
	if err := db.SaveAttempt(attempt); err != nil {
		return err
	}
	return db.SaveLeaderboardEntry(&store.LeaderboardEntry{
		GameID:        gameID,
		Status:        result.Status,
		AdmittedCount: result.AdmittedCount,
		RejectedCount: result.RejectedCount,
		TotalSeen:     result.AdmittedCount + result.RejectedCount,
	})
}

func printResult(result *game.Result) {
	fmt.Printf("status: %s\n", result.Status)
	fmt.Printf("admitted: %d  rejected: %d  constraints met: %v\n",
		result.AdmittedCount, result.RejectedCount, result.ConstraintsMet)
	summary := trace.Summarize(result.Trace)
	for reason, n := range summary.ByReason {
		fmt.Printf("  %6d  %s\n", n, reason)
	}
}

func init() {
	playCmd.Flags().StringVar(&gameID, "game-id", "", "Game UUID returned by new-game")
	playCmd.Flags().StringVar(&policyName, "policy", "constraint-aware", "Admission policy (always-accept, constraint-aware)")
	playCmd.Flags().StringVar(&specFile, "scenario-file", "", "Scenario YAML with threshold overrides")
	playCmd.Flags().StringVar(&baseURL, "base-url", client.DefaultBaseURL, "Challenge server base URL")

	rootCmd.AddCommand(playCmd)
}
