package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mealplanner/internal/config"
	"mealplanner/internal/ga"
	"mealplanner/internal/logging"
	"mealplanner/internal/recipe"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/plan.yaml", "path to config file (.yaml or .toml)")
	generations := flag.Int("generations", -1, "override ga.max_generations")
	seed := flag.Int64("seed", 0, "override the random seed")
	outPath := flag.String("out", "", "override logging.plan_path")
	metricsAddr := flag.String("metrics-addr", "", "serve prometheus metrics on this address")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env: %v\n", err)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *generations >= 0 {
		cfg.GA.MaxGenerations = *generations
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *outPath != "" {
		cfg.Logging.PlanPath = *outPath
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slots, _ := cfg.MealSlots()

	runID := logging.NewRunID()
	fmt.Printf("Meal Planner - Run: %s\n", runID)
	fmt.Printf("Config: %s, Seed: %d\n", *configPath, cfg.Seed)
	fmt.Printf("Slots: %v, Diet: %s\n", slots, cfg.Diet())
	fmt.Printf("Target: kcal=%.0f C=%.0f P=%.0f F=%.0f\n",
		cfg.Target.Calories, cfg.Target.Carbs, cfg.Target.Protein, cfg.Target.Fat)
	fmt.Printf("Population: %d, Elites: %d, Tournament K: %d, Mutation: %.2f, Workers: %d\n",
		cfg.GA.PopulationSize, cfg.GA.EliteCount, cfg.GA.TournamentSize, cfg.GA.MutationRate, cfg.GA.Workers)
	fmt.Println("---")

	// Metrics
	reg := prometheus.NewRegistry()
	metrics, err := logging.NewMetrics(reg, runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error registering metrics: %v\n", err)
		os.Exit(1)
	}
	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Warning: metrics server: %v\n", err)
			}
		}()
		defer srv.Close()
		fmt.Printf("Metrics: http://%s/metrics\n", cfg.Metrics.Addr)
	}

	// Recipe provider
	provider, err := newProvider(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading recipes: %v\n", err)
		os.Exit(1)
	}
	provider = metrics.InstrumentProvider(provider)

	// Create logger
	logger, err := logging.NewLogger(runID, cfg.Logging.CSVPath, cfg.Logging.JSONPath, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opt := &ga.Optimizer{
		Config:   cfg.GA,
		Diet:     cfg.Diet(),
		Factory:  ga.RandomGenomeFactory(provider, slots, cfg.Diet()),
		Fitness:  cfg.Fitness(),
		Provider: provider,
		Rand:     rand.New(rand.NewSource(cfg.Seed)),
		OnGeneration: func(r ga.GenerationReport) {
			metrics.ObserveGeneration(r)
			if cfg.Logging.EveryGenSummary {
				logger.LogGeneration(r)
			}
			if r.Generation%10 == 0 && cfg.Logging.TopNDebug > 0 {
				logger.LogTopK(r.Population, cfg.Logging.TopNDebug)
			}
		},
	}

	startTime := time.Now()
	res, runErr := opt.Run(ctx)
	metrics.ObserveResult(res, runErr)
	elapsed := time.Since(startTime)

	fmt.Println("---")
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running optimizer: %v\n", runErr)
		if res.Best == nil {
			// deferred cleanups are skipped by os.Exit
			logger.Close()
			os.Exit(1)
		}
		fmt.Println("Saving best plan found before the run stopped")
	} else {
		fmt.Printf("Search %s after %d generations in %v\n", res.State, res.Generations, elapsed)
	}

	plan := logging.NewPlan(runID, cfg.Seed, cfg.Diet(), cfg.Target, res)
	printPlan(plan)
	if err := logging.SavePlan(cfg.Logging.PlanPath, plan); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save plan: %v\n", err)
	} else {
		fmt.Printf("Plan saved to %s\n", cfg.Logging.PlanPath)
	}

	if runErr != nil {
		logger.Close()
		os.Exit(1)
	}
}

// newProvider builds the recipe source named by the catalog section
func newProvider(cfg *config.Config) (recipe.Provider, error) {
	if cfg.Catalog.Path != "" {
		cat, err := recipe.LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Catalog: %s (%d recipes)\n", cfg.Catalog.Path, cat.Len())
		return cat, nil
	}
	if cfg.Catalog.APIKey == "" {
		fmt.Fprintf(os.Stderr, "Warning: %s is not set, calling %s without credentials\n",
			cfg.Catalog.APIKeyEnv, cfg.Catalog.URL)
	}
	fmt.Printf("Catalog: %s\n", cfg.Catalog.URL)
	return recipe.NewHTTPProvider(cfg.Catalog.URL, cfg.Catalog.APIKey, time.Duration(cfg.Catalog.Timeout)), nil
}

func printPlan(p *logging.Plan) {
	fmt.Printf("Best plan: Fitness=%.4f, kcal=%.0f C=%.0f P=%.0f F=%.0f\n",
		p.Fitness, p.Totals.Calories, p.Totals.Carbs, p.Totals.Protein, p.Totals.Fat)
	for _, s := range p.Slots {
		if s.Recipe == nil {
			fmt.Printf("  %-9s -\n", s.Slot)
			continue
		}
		fmt.Printf("  %-9s %s (%s)\n", s.Slot, s.Recipe.Name, s.Recipe.ID)
	}
}
