package ga

import (
	"mealplanner/internal/recipe"
)

// Gene is one meal slot of a plan. Slot is fixed for the life of the run;
// Recipe may be nil for a partially built plan.
type Gene struct {
	Slot   recipe.MealType
	Recipe *recipe.Recipe
}

// Genome is one candidate meal plan
type Genome struct {
	Genes   []Gene
	Fitness float64
	Totals  recipe.Macros
}

// NewGenome creates an empty genome with the given slot layout
func NewGenome(slots []recipe.MealType) *Genome {
	g := &Genome{Genes: make([]Gene, len(slots))}
	for i, s := range slots {
		g.Genes[i].Slot = s
	}
	return g
}

// Len returns the number of meal slots
func (g *Genome) Len() int {
	return len(g.Genes)
}

// Gene returns the gene at index i
func (g *Genome) Gene(i int) Gene {
	return g.Genes[i]
}

// SetRecipe replaces the recipe at index i, keeping the slot's meal type
func (g *Genome) SetRecipe(i int, r *recipe.Recipe) {
	g.Genes[i].Recipe = r
}

// Slots returns the meal-type layout of the genome
func (g *Genome) Slots() []recipe.MealType {
	slots := make([]recipe.MealType, len(g.Genes))
	for i, gene := range g.Genes {
		slots[i] = gene.Slot
	}
	return slots
}

// Clone creates a deep copy of a genome. Recipes are shared, never copied.
func (g *Genome) Clone() *Genome {
	genes := make([]Gene, len(g.Genes))
	copy(genes, g.Genes)
	return &Genome{
		Genes:   genes,
		Fitness: g.Fitness,
		Totals:  g.Totals,
	}
}

// sameLayout reports whether two genomes are positionally aligned
func sameLayout(a, b *Genome) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Genes {
		if a.Genes[i].Slot != b.Genes[i].Slot {
			return false
		}
	}
	return true
}
