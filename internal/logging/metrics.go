package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/uuid"

	"mealplanner/internal/ga"
	"mealplanner/internal/recipe"
)

// NewRunID returns a fresh identifier for one optimizer run
func NewRunID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Logger handles all run output and artifact saving
type Logger struct {
	runID       string
	csvPath     string
	jsonPath    string
	out         io.Writer
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	initialized bool
}

// NewLogger creates a new logger. Console lines go to out.
func NewLogger(runID, csvPath, jsonPath string, out io.Writer) (*Logger, error) {
	l := &Logger{
		runID:    runID,
		csvPath:  csvPath,
		jsonPath: jsonPath,
		out:      out,
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// Init initializes the log files
func (l *Logger) Init() error {
	var err error

	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	header := []string{
		"generation", "best_fitness", "mean_fitness", "std_fitness", "min_fitness",
		"best_ever", "best_calories", "best_carbs", "best_protein", "best_fat",
	}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	l.initialized = true
	return nil
}

// Close closes all log files
func (l *Logger) Close() {
	if l.csvWriter != nil {
		l.csvWriter.Flush()
	}
	if l.csvFile != nil {
		l.csvFile.Close()
	}
	if l.jsonFile != nil {
		l.jsonFile.Close()
	}
}

// GenerationSummary holds per-generation statistics
type GenerationSummary struct {
	RunID       string        `json:"run_id"`
	Generation  int           `json:"generation"`
	Size        int           `json:"size"`
	BestFitness float64       `json:"best_fitness"`
	MeanFitness float64       `json:"mean_fitness"`
	StdFitness  float64       `json:"std_fitness"`
	MinFitness  float64       `json:"min_fitness"`
	BestEver    float64       `json:"best_ever"`
	BestTotals  recipe.Macros `json:"best_totals"`
	Improved    bool          `json:"improved"`
}

// LogGeneration logs a generation summary
func (l *Logger) LogGeneration(r ga.GenerationReport) {
	if !l.initialized {
		return
	}

	summary := GenerationSummary{
		RunID:       l.runID,
		Generation:  r.Generation,
		Size:        r.Summary.Size,
		BestFitness: r.Summary.Best,
		MeanFitness: r.Summary.Mean,
		StdFitness:  r.Summary.Std,
		MinFitness:  r.Summary.Min,
		Improved:    r.Improved,
	}
	if r.Best != nil {
		summary.BestEver = r.Best.Fitness
		summary.BestTotals = r.Best.Totals
	}

	row := []string{
		strconv.Itoa(r.Generation),
		fmt.Sprintf("%.4f", summary.BestFitness),
		fmt.Sprintf("%.4f", summary.MeanFitness),
		fmt.Sprintf("%.4f", summary.StdFitness),
		fmt.Sprintf("%.4f", summary.MinFitness),
		fmt.Sprintf("%.4f", summary.BestEver),
		fmt.Sprintf("%.1f", summary.BestTotals.Calories),
		fmt.Sprintf("%.1f", summary.BestTotals.Carbs),
		fmt.Sprintf("%.1f", summary.BestTotals.Protein),
		fmt.Sprintf("%.1f", summary.BestTotals.Fat),
	}
	l.csvWriter.Write(row)
	l.csvWriter.Flush()

	jsonLine, _ := json.Marshal(summary)
	l.jsonFile.WriteString(string(jsonLine) + "\n")

	mark := ""
	if r.Improved {
		mark = " *"
	}
	fmt.Fprintf(l.out, "Gen %4d | Best: %.4f | Mean: %.4f | Std: %.4f | Ever: %.4f | kcal=%.0f C=%.0f P=%.0f F=%.0f%s\n",
		r.Generation, summary.BestFitness, summary.MeanFitness, summary.StdFitness, summary.BestEver,
		summary.BestTotals.Calories, summary.BestTotals.Carbs, summary.BestTotals.Protein, summary.BestTotals.Fat,
		mark)
}

// LogTopK logs debug info for the top K genomes of a population
func (l *Logger) LogTopK(pop ga.Population, k int) {
	top := pop.TopK(k)
	fmt.Fprintf(l.out, "  Top %d plans:\n", len(top))
	for i, g := range top {
		fmt.Fprintf(l.out, "    #%d: Fitness=%.4f, kcal=%.0f, Recipes=%v\n",
			i+1, g.Fitness, g.Totals.Calories, recipeIDs(g))
	}
}

func recipeIDs(g *ga.Genome) []string {
	ids := make([]string, g.Len())
	for i, gene := range g.Genes {
		if gene.Recipe != nil {
			ids[i] = gene.Recipe.ID
		}
	}
	return ids
}

// PlanSlot is one meal of a saved plan
type PlanSlot struct {
	Slot   recipe.MealType `json:"slot"`
	Recipe *recipe.Recipe  `json:"recipe,omitempty"`
}

// Plan is the saved output of a run
type Plan struct {
	RunID       string        `json:"run_id"`
	Seed        int64         `json:"seed"`
	State       string        `json:"state"`
	Generations int           `json:"generations"`
	Diet        string        `json:"diet_type"`
	Fitness     float64       `json:"fitness"`
	Target      ga.Target     `json:"target"`
	Totals      recipe.Macros `json:"totals"`
	Slots       []PlanSlot    `json:"slots"`
}

// NewPlan captures the best genome of a run
func NewPlan(runID string, seed int64, diet recipe.DietType, target ga.Target, res ga.Result) *Plan {
	p := &Plan{
		RunID:       runID,
		Seed:        seed,
		State:       res.State.String(),
		Generations: res.Generations,
		Diet:        string(diet),
		Target:      target,
	}
	if res.Best == nil {
		return p
	}
	p.Fitness = res.Best.Fitness
	p.Totals = res.Best.Totals
	p.Slots = make([]PlanSlot, res.Best.Len())
	for i, gene := range res.Best.Genes {
		p.Slots[i] = PlanSlot{Slot: gene.Slot, Recipe: gene.Recipe}
	}
	return p
}

// Genome rebuilds the genome a plan was saved from
func (p *Plan) Genome() *ga.Genome {
	g := &ga.Genome{Genes: make([]ga.Gene, len(p.Slots)), Fitness: p.Fitness, Totals: p.Totals}
	for i, s := range p.Slots {
		g.Genes[i] = ga.Gene{Slot: s.Slot, Recipe: s.Recipe}
	}
	return g
}

// SavePlan saves a plan to a file
func SavePlan(path string, plan *Plan) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonData, 0644)
}

// LoadPlan loads a plan from a file
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, err
	}

	return &plan, nil
}
