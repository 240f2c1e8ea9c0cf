package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"mealplanner/internal/config"
	"mealplanner/internal/ga"
	"mealplanner/internal/logging"
)

func main() {
	// Parse flags
	planPath := flag.String("plan", "artifacts/plan.json", "path to saved plan JSON")
	configPath := flag.String("config", "", "optional config whose target and weights to score against")
	flag.Parse()

	plan, err := logging.LoadPlan(*planPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading plan: %v\n", err)
		os.Exit(1)
	}

	target := plan.Target
	weights := ga.DefaultWeights()
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		target, weights = cfg.Target, cfg.Weights
	}

	fmt.Printf("Plan %s (seed=%d, diet=%s)\n", plan.RunID, plan.Seed, plan.Diet)
	fmt.Printf("Search %s after %d generations, saved fitness=%.4f\n", plan.State, plan.Generations, plan.Fitness)
	fmt.Println()

	fmt.Printf("%-9s  %-28s  %7s  %6s  %7s  %5s\n", "SLOT", "RECIPE", "KCAL", "CARBS", "PROTEIN", "FAT")
	fmt.Println(strings.Repeat("-", 72))
	for _, s := range plan.Slots {
		if s.Recipe == nil {
			fmt.Printf("%-9s  %-28s\n", s.Slot, "-")
			continue
		}
		r := s.Recipe
		fmt.Printf("%-9s  %-28s  %7.0f  %6.1f  %7.1f  %5.1f\n",
			s.Slot, truncate(r.Name, 28), r.Calories, r.Carbs, r.Protein, r.Fat)
	}
	fmt.Println(strings.Repeat("-", 72))

	// Recompute rather than trust the saved totals
	g := plan.Genome()
	res := ga.MacroFitness{Target: target, Weights: weights}.Evaluate(g)
	t := res.Totals
	fmt.Printf("%-9s  %-28s  %7.0f  %6.1f  %7.1f  %5.1f\n", "TOTAL", "", t.Calories, t.Carbs, t.Protein, t.Fat)
	fmt.Printf("%-9s  %-28s  %7.0f  %6.1f  %7.1f  %5.1f\n", "TARGET", "", target.Calories, target.Carbs, target.Protein, target.Fat)
	fmt.Printf("%-9s  %-28s  %7.3f  %6.3f  %7.3f  %5.3f\n", "SCORE", "",
		ga.Score(t.Calories, target.Calories), ga.Score(t.Carbs, target.Carbs),
		ga.Score(t.Protein, target.Protein), ga.Score(t.Fat, target.Fat))
	fmt.Println()
	fmt.Printf("Fitness: %.4f\n", res.Fitness)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
