package services

import "github.com/custodia-labs/cookbook/internal/core/domain"

// PageRefs are the already-resolved IDs a recipe page links to.
type PageRefs struct {
	ParentDatabaseID string
	IngredientIDs    []string
	CuisineID        string
}

// Section headings on every recipe page.
const (
	HeadingIngredients  = "Ingredients"
	HeadingInstructions = "Instructions"
)

// Recipe tags, in the order they are written.
const (
	TagVegetarian  = "Vegetarian"
	TagVegan       = "Vegan"
	TagGlutenFree  = "Gluten Free"
	TagHealthy     = "Healthy"
	TagCheap       = "Cheap"
	TagDairyFree   = "Dairy Free"
	TagHighProtein = "High Protein"
)

// highProteinRatio is the calories-per-gram-of-protein threshold below
// which a recipe is tagged High Protein.
const highProteinRatio = 15.0

// BuildPage converts a recipe and its resolved reference IDs into a page.
// It performs no I/O and returns the same page for the same inputs.
func BuildPage(recipe *domain.Recipe, refs PageRefs) *domain.Page {
	cover := domain.DefaultCoverURL
	if recipe.Image != "" {
		cover = recipe.Image
	}

	return &domain.Page{
		ParentDatabaseID: refs.ParentDatabaseID,
		Cover:            domain.ExternalFile{URL: cover},
		Icon:             domain.ExternalFile{URL: domain.RecipeIconURL},
		Properties:       buildProperties(recipe, refs),
		Children:         buildContent(recipe),
	}
}

func buildProperties(recipe *domain.Recipe, refs PageRefs) domain.Properties {
	calories, hasCalories := recipe.NutrientAmount(domain.NutrientCalories)
	protein, hasProtein := recipe.NutrientAmount(domain.NutrientProtein)

	var cuisineIDs []string
	if refs.CuisineID != "" {
		cuisineIDs = []string{refs.CuisineID}
	}

	return domain.Properties{
		domain.PropName:        domain.TitleProperty{Text: recipe.Title},
		domain.PropURL:         domain.URLProperty{URL: recipe.SourceURL},
		domain.PropCourse:      domain.MultiSelectProperty{Options: courseOptions(recipe.DishTypes)},
		domain.PropServings:    optionalNumber(recipe.Servings),
		domain.PropCalories:    measuredNumber(calories, hasCalories),
		domain.PropProtein:     measuredNumber(protein, hasProtein),
		domain.PropPrepMins:    optionalNumber(recipe.PreparationMinutes),
		domain.PropCookingMins: optionalNumber(recipe.CookingMinutes),
		domain.PropTotalMins:   optionalNumber(recipe.ReadyInMinutes),
		domain.PropFavorite:    domain.CheckboxProperty{Checked: false},
		domain.PropIngredients: domain.RelationProperty{IDs: nonEmpty(refs.IngredientIDs)},
		domain.PropCuisine:     domain.RelationProperty{IDs: cuisineIDs},
		domain.PropTags: domain.MultiSelectProperty{
			Options: domain.Options(recipeTags(recipe, calories, hasCalories, protein, hasProtein)...),
		},
	}
}

// recipeTags derives tags from the dietary flags and the protein ratio.
func recipeTags(recipe *domain.Recipe, calories float64, hasCalories bool, protein float64, hasProtein bool) []string {
	tags := make([]string, 0, 7)
	flags := []struct {
		set bool
		tag string
	}{
		{recipe.Vegetarian, TagVegetarian},
		{recipe.Vegan, TagVegan},
		{recipe.GlutenFree, TagGlutenFree},
		{recipe.VeryHealthy, TagHealthy},
		{recipe.Cheap, TagCheap},
		{recipe.DairyFree, TagDairyFree},
	}
	for _, f := range flags {
		if f.set {
			tags = append(tags, f.tag)
		}
	}

	if hasCalories && hasProtein && calories > 0 && protein > 0 && calories/protein < highProteinRatio {
		tags = append(tags, TagHighProtein)
	}
	return tags
}

func courseOptions(dishTypes []string) []domain.SelectOption {
	names := make([]string, 0, len(dishTypes))
	for _, dt := range dishTypes {
		names = append(names, domain.TitleCase(dt))
	}
	return domain.Options(names...)
}

// optionalNumber leaves the property unset for the Unknown sentinel.
func optionalNumber(v int) domain.NumberProperty {
	if v == domain.Unknown {
		return domain.NumberProperty{}
	}
	return domain.Number(float64(v))
}

func measuredNumber(v float64, ok bool) domain.NumberProperty {
	if !ok {
		return domain.NumberProperty{}
	}
	return domain.Number(v)
}

func nonEmpty(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// buildContent lays out the ingredient list and the method. Steps of unnamed
// instruction groups are top-level numbered items; a named group becomes one
// numbered item with its steps nested underneath.
func buildContent(recipe *domain.Recipe) domain.Blocks {
	blocks := make(domain.Blocks, 0, len(recipe.ExtendedIngredients)+8)

	blocks = append(blocks, domain.HeadingBlock{Text: HeadingIngredients}, domain.DividerBlock{})
	for _, ing := range recipe.ExtendedIngredients {
		blocks = append(blocks, domain.BulletBlock{Text: ing.Original})
	}

	blocks = append(blocks, domain.HeadingBlock{Text: HeadingInstructions}, domain.DividerBlock{})
	for _, group := range recipe.AnalyzedInstructions {
		if group.Name == "" {
			for _, step := range group.Steps {
				blocks = append(blocks, domain.NumberedBlock{Text: step.Step})
			}
			continue
		}

		children := make([]domain.Block, 0, len(group.Steps))
		for _, step := range group.Steps {
			children = append(children, domain.NumberedBlock{Text: step.Step})
		}
		blocks = append(blocks, domain.NumberedBlock{Text: group.Name, Children: children})
	}

	return blocks
}
