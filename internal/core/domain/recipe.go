package domain

import "encoding/json"

// Unknown is the payload sentinel for a numeric value the recipe API could not
// determine. Properties holding Unknown are left unpopulated.
const Unknown = -1

// Recipe is the semi-structured recipe payload returned by the recipe API.
// JSON tags follow the upstream wire names.
type Recipe struct {
	Title              string `json:"title"`
	SourceURL          string `json:"sourceUrl"`
	Image              string `json:"image,omitempty"`
	Servings           int    `json:"servings"`
	PreparationMinutes int    `json:"preparationMinutes"`
	CookingMinutes     int    `json:"cookingMinutes"`
	ReadyInMinutes     int    `json:"readyInMinutes"`

	ExtendedIngredients  []Ingredient       `json:"extendedIngredients"`
	Instructions         string             `json:"instructions,omitempty"`
	AnalyzedInstructions []InstructionGroup `json:"analyzedInstructions"`

	Nutrition *Nutrition      `json:"nutrition,omitempty"`
	Taste     json.RawMessage `json:"taste,omitempty"`

	Vegetarian  bool `json:"vegetarian"`
	Vegan       bool `json:"vegan"`
	GlutenFree  bool `json:"glutenFree"`
	DairyFree   bool `json:"dairyFree"`
	VeryHealthy bool `json:"veryHealthy"`
	Cheap       bool `json:"cheap"`

	DishTypes []string `json:"dishTypes"`
	Cuisines  []string `json:"cuisines"`
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	// Original is the ingredient line as written in the source recipe.
	Original string `json:"original"`

	// NameClean is the API's canonical ingredient name. May be empty.
	NameClean string `json:"nameClean"`

	// Aisle is the supermarket aisle; comma-separated when several apply.
	// Nil when the API has no aisle for the ingredient.
	Aisle *string `json:"aisle"`
}

// Nutrition holds nutrient amounts for the whole recipe.
type Nutrition struct {
	Nutrients []Nutrient `json:"nutrients"`
}

// Nutrient is a single nutrient amount.
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit,omitempty"`
}

// InstructionGroup is a run of steps. Groups with an empty Name belong to the
// main method; named groups are sub-recipes such as "Sauce".
type InstructionGroup struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Step is one instruction step.
type Step struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// Analysis is the subset of an analysis response merged onto an extracted recipe.
type Analysis struct {
	Nutrition *Nutrition      `json:"nutrition,omitempty"`
	Taste     json.RawMessage `json:"taste,omitempty"`
}

// Nutrient names looked up on the recipe page.
const (
	NutrientCalories = "Calories"
	NutrientProtein  = "Protein"
)

// NutrientAmount returns the amount of the first nutrient whose name matches exactly.
func (r *Recipe) NutrientAmount(name string) (float64, bool) {
	if r.Nutrition == nil {
		return 0, false
	}
	for _, n := range r.Nutrition.Nutrients {
		if n.Name == name {
			return n.Amount, true
		}
	}
	return 0, false
}

// IngredientLines returns the original text of every ingredient, in order.
func (r *Recipe) IngredientLines() []string {
	lines := make([]string, len(r.ExtendedIngredients))
	for i, ing := range r.ExtendedIngredients {
		lines[i] = ing.Original
	}
	return lines
}

// CleanIngredientNames returns the non-empty canonical ingredient names, in order.
func (r *Recipe) CleanIngredientNames() []string {
	names := make([]string, 0, len(r.ExtendedIngredients))
	for _, ing := range r.ExtendedIngredients {
		if ing.NameClean != "" {
			names = append(names, ing.NameClean)
		}
	}
	return names
}

// ApplyAnalysis copies nutrition and taste from an analysis onto the recipe.
// No other field is touched: the analysis response carries placeholder values
// for servings and ingredients that must not overwrite the extracted ones.
func (r *Recipe) ApplyAnalysis(a *Analysis) {
	if a == nil {
		return
	}
	r.Nutrition = a.Nutrition
	r.Taste = a.Taste
}
