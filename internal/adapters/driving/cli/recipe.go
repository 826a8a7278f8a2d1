package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cookbook/internal/adapters/driving/tui"
	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
)

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Import and analyse recipes",
}

var recipeCreateCmd = &cobra.Command{
	Use:   "create [url]",
	Short: "Import a recipe into the recipe database",
	Long: `Extract the recipe at the given URL, analyse its nutrition, classify
its cuisine and write it as a page in the recipe database.

With --id, the existing page is rewritten instead of a new one being created.
On a terminal a progress view is shown; use --plain for line output.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipeCreate,
}

var recipeAnalyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Print the extracted recipe with nutrition as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeAnalyze,
}

// Flags for recipe create.
var (
	recipePageID string
	recipePlain  bool
)

func init() {
	recipeCreateCmd.Flags().StringVar(&recipePageID, "id", "", "Existing page to rewrite")
	recipeCreateCmd.Flags().BoolVar(&recipePlain, "plain", false, "Print progress as plain lines")

	recipeCmd.AddCommand(recipeCreateCmd)
	recipeCmd.AddCommand(recipeAnalyzeCmd)
	rootCmd.AddCommand(recipeCmd)
}

func runRecipeCreate(cmd *cobra.Command, args []string) error {
	if err := requireService("recipe service", recipeService != nil); err != nil {
		return err
	}

	req := driving.CreateRecipeRequest{URL: args[0], PageID: recipePageID}
	if err := recipeService.Validate(req); err != nil {
		return err
	}

	if !recipePlain && isTerminal() && cmd.OutOrStdout() == os.Stdout {
		url, err := tui.Run(cmd.Context(), &tui.Ports{Recipes: recipeService}, req, tea.WithContext(cmd.Context()))
		if err != nil {
			return err
		}
		cmd.Println(url)
		return nil
	}

	return printProgress(cmd, recipeService.Stream(cmd.Context(), req))
}

// printProgress writes one line per event and returns the error event, if any.
func printProgress(cmd *cobra.Command, events <-chan domain.ProgressEvent) error {
	var failure error
	for event := range events {
		switch event.Status {
		case domain.StatusError:
			failure = errors.New(event.Message)
		case domain.StatusRedirecting:
			cmd.Printf("[%s] %s\n", event.Status, event.Message)
			cmd.Println(event.URL)
		default:
			cmd.Printf("[%s] %s\n", event.Status, event.Message)
		}
	}
	return failure
}

func runRecipeAnalyze(cmd *cobra.Command, args []string) error {
	if err := requireService("recipe analyzer", analyzerService != nil); err != nil {
		return err
	}

	recipe, err := analyzerService.Analyze(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to analyze recipe: %w", err)
	}
	return printJSON(cmd, recipe)
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	cmd.Println(string(out))
	return nil
}
