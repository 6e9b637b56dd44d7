package cmd

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bkocis/berghain-challenges-listenlabs-ai/door"
	"github.com/bkocis/berghain-challenges-listenlabs-ai/door/trace"
)

var (
	scenarioName string // Built-in scenario preset name
	simPolicy    string // Policy override for simulation runs
	seed         int64  // Seed for candidate generation
	runs         int    // Number of simulated attempts
	showDrift    bool   // Compare advertised vs. sampled statistics
)

// simulateCmd replays a scenario offline: candidates are sampled from the
// advertised statistics and streamed through the chosen policy.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scenario offline against a policy",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := loadSpec()
		if err != nil {
			logrus.Fatalf("Loading scenario: %v", err)
		}
		if simPolicy != "" && !door.IsValidPolicy(simPolicy) {
			logrus.Fatalf("Unknown policy %q; valid policies: always-accept, constraint-aware", simPolicy)
		}
		if runs < 1 {
			logrus.Fatalf("Runs must be positive (got %d)", runs)
		}

		name := simPolicy
		if name == "" {
			name = spec.Policy
		}
		thresholds := spec.EffectiveThresholds()

		logrus.Infof("Simulating scenario %s: %d run(s), policy=%s, seed=%d",
			spec.Name, runs, name, seed)

		completed := 0
		startTime := time.Now()
		for i := 0; i < runs; i++ {
			policy := door.NewPolicy(name, thresholds)
			sim := door.NewGameSimulator(spec, policy, seed+int64(i))
			outcome := sim.Run()
			if outcome.Status == door.StatusCompleted {
				completed++
			}
			printOutcome(i+1, outcome)
			if showDrift {
				printDrift(spec, outcome)
			}
		}
		fmt.Printf("\ncompleted %d/%d run(s) in %v\n", completed, runs, time.Since(startTime).Round(time.Millisecond))
	},
}

// loadSpec resolves the scenario from --scenario-file or --scenario.
func loadSpec() (*door.ScenarioSpec, error) {
	if specFile == "" {
		return door.ScenarioPreset(scenarioName)
	}
	spec, err := door.LoadScenarioSpec(specFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func printOutcome(run int, outcome *door.Outcome) {
	fmt.Printf("run %d: %s  admitted=%d rejected=%d constraints met=%v\n",
		run, outcome.Status, outcome.AdmittedCount, outcome.RejectedCount, outcome.ConstraintsMet)

	summary := trace.Summarize(outcome.Trace)
	reasons := make([]string, 0, len(summary.ByReason))
	for reason := range summary.ByReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Printf("  %6d  %s\n", summary.ByReason[reason], reason)
	}
}

// printDrift reports how far the sampled population strayed from the
// advertised frequencies.
func printDrift(spec *door.ScenarioSpec, outcome *door.Outcome) {
	observed := door.ComputeStatistics(outcome.Samples)
	drifts := door.CompareFrequencies(spec.StatisticsTable(), observed)
	for _, d := range drifts {
		marker := ""
		if math.Abs(d.Delta) > 0.02 {
			marker = "  <-- drift"
		}
		fmt.Printf("  %-20s advertised=%.3f observed=%.3f delta=%+.3f%s\n",
			d.Attribute, d.Advertised, d.Observed, d.Delta, marker)
	}
}

func init() {
	simulateCmd.Flags().StringVar(&scenarioName, "scenario", "first-friday", "Built-in scenario (first-friday, club-night, exclusive-night)")
	simulateCmd.Flags().StringVar(&specFile, "scenario-file", "", "Scenario YAML file (overrides --scenario)")
	simulateCmd.Flags().StringVar(&simPolicy, "policy", "", "Admission policy (defaults to the scenario's policy)")
	simulateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for candidate generation")
	simulateCmd.Flags().IntVar(&runs, "runs", 1, "Number of simulated attempts")
	simulateCmd.Flags().BoolVar(&showDrift, "drift", false, "Compare advertised vs. sampled statistics")

	rootCmd.AddCommand(simulateCmd)
}
