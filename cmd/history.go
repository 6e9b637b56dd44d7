package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bkocis/berghain-challenges-listenlabs-ai/store"
)

var leaderboardLimit int // Max leaderboard rows to print

// leaderboardCmd prints the locally recorded attempt outcomes, most recent
// first.
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show recorded attempt outcomes, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := store.Open(dbPath)
		if err != nil {
			logrus.Fatalf("Opening store: %v", err)
		}
		defer db.Close()

		entries, err := db.Leaderboard(leaderboardLimit)
		if err != nil {
			logrus.Fatalf("Listing leaderboard: %v", err)
		}
		if len(entries) == 0 {
			fmt.Println("no attempts recorded")
			return
		}
		fmt.Printf("%-20s  %-36s  %-9s  %8s  %8s\n", "when", "game", "status", "admitted", "rejected")
		for _, e := range entries {
			fmt.Printf("%-20s  %-36s  %-9s  %8d  %8d\n",
				e.Timestamp.Local().Format(time.DateTime), e.GameID, e.Status,
				e.AdmittedCount, e.RejectedCount)
		}
	},
}

// attemptsCmd prints the attempt history of a single game.
var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "Show the attempt history of one game",
	Run: func(cmd *cobra.Command, args []string) {
		if gameID == "" {
			logrus.Fatalf("Game ID not provided")
		}

		db, err := store.Open(dbPath)
		if err != nil {
			logrus.Fatalf("Opening store: %v", err)
		}
		defer db.Close()

		attempts, err := db.Attempts(gameID)
		if err != nil {
			logrus.Fatalf("Listing attempts: %v", err)
		}
		if len(attempts) == 0 {
			fmt.Printf("no attempts recorded for game %s\n", gameID)
			return
		}
		for _, a := range attempts {
			fmt.Printf("#%d  %s  %-9s  admitted=%d rejected=%d constraints met=%v\n",
				a.Number, a.Timestamp.Local().Format(time.DateTime), a.Status,
				a.AdmittedCount, a.RejectedCount, a.ConstraintsMet)
		}
	},
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardLimit, "limit", 20, "Max rows to print (0 for all)")
	attemptsCmd.Flags().StringVar(&gameID, "game-id", "", "Game UUID returned by new-game")

	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(attemptsCmd)
}
