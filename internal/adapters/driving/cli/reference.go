package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

var ingredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Look up and create ingredients",
}

var ingredientFindCmd = &cobra.Command{
	Use:   "find [name]",
	Short: "Find an ingredient by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReferenceFind(cmd, domain.ReferenceIngredient, args[0])
	},
}

var ingredientCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an ingredient",
	Long: `Create an ingredient without checking for an existing one.
Categories are separated by semicolons, e.g. --category "Produce;Spices".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReferenceCreate(cmd, domain.ReferenceIngredient, args[0], ingredientCategory)
	},
}

var cuisineCmd = &cobra.Command{
	Use:   "cuisine",
	Short: "Classify recipes and look up cuisines",
}

var cuisineFindCmd = &cobra.Command{
	Use:   "find [name]",
	Short: "Find a cuisine by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReferenceFind(cmd, domain.ReferenceCuisine, args[0])
	},
}

var cuisineCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a cuisine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cuisineType == "" {
			return errors.New("--type is required")
		}
		return runReferenceCreate(cmd, domain.ReferenceCuisine, args[0], cuisineType)
	},
}

var cuisineClassifyCmd = &cobra.Command{
	Use:   "classify [title]",
	Short: "Classify a recipe's cuisine",
	Long: `Classify a recipe's cuisine from its title and ingredients.
Ingredients are separated by semicolons, e.g. --ingredients "rice;parmesan".`,
	Args: cobra.ExactArgs(1),
	RunE: runCuisineClassify,
}

// Flags for the reference commands.
var (
	ingredientCategory string
	cuisineType        string
	cuisineIngredients string
)

func init() {
	ingredientCreateCmd.Flags().StringVarP(&ingredientCategory, "category", "c", "", "Semicolon-separated categories")
	cuisineCreateCmd.Flags().StringVarP(&cuisineType, "type", "t", domain.CuisineType, "Cuisine type")
	cuisineClassifyCmd.Flags().StringVarP(&cuisineIngredients, "ingredients", "i", "", "Semicolon-separated ingredients")

	ingredientCmd.AddCommand(ingredientFindCmd)
	ingredientCmd.AddCommand(ingredientCreateCmd)
	cuisineCmd.AddCommand(cuisineFindCmd)
	cuisineCmd.AddCommand(cuisineCreateCmd)
	cuisineCmd.AddCommand(cuisineClassifyCmd)
	rootCmd.AddCommand(ingredientCmd)
	rootCmd.AddCommand(cuisineCmd)
}

func runReferenceFind(cmd *cobra.Command, kind domain.ReferenceKind, name string) error {
	if err := requireService("reference service", referenceService != nil); err != nil {
		return err
	}

	entity, err := referenceService.Lookup(cmd.Context(), kind, name)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("No %s named %q\n", kind, name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find %s: %w", kind, err)
	}

	printEntity(cmd, entity)
	return nil
}

func runReferenceCreate(cmd *cobra.Command, kind domain.ReferenceKind, name, categories string) error {
	if err := requireService("reference service", referenceService != nil); err != nil {
		return err
	}

	entity, err := referenceService.Create(cmd.Context(), kind, name, categories)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", kind, err)
	}

	cmd.Printf("Created %s\n", kind)
	printEntity(cmd, entity)
	return nil
}

func printEntity(cmd *cobra.Command, entity *domain.ReferenceEntity) {
	cmd.Printf("  ID: %s\n", entity.ID)
	cmd.Printf("  Name: %s\n", entity.Name)
	if len(entity.Categories) > 0 {
		cmd.Printf("  Categories: %s\n", strings.Join(entity.Categories, ", "))
	}
}

func runCuisineClassify(cmd *cobra.Command, args []string) error {
	if err := requireService("cuisine service", cuisineService != nil); err != nil {
		return err
	}

	status, body, err := cuisineService.ClassifyRaw(cmd.Context(), args[0], cuisineIngredients)
	if err != nil {
		return fmt.Errorf("failed to classify: %w", err)
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("classifier returned status %d: %s", status, strings.TrimSpace(string(body)))
	}

	cmd.Println(strings.TrimSpace(string(body)))
	return nil
}
