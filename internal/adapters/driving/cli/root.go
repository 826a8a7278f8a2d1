// Package cli provides the cookbook command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by SetServices or the bootstrap function.
var (
	settingsService  driving.SettingsService
	recipeService    driving.RecipeService
	analyzerService  driving.RecipeAnalyzer
	referenceService driving.ReferenceService
	cuisineService   driving.CuisineService

	// configErr explains why the pipeline services are missing.
	configErr error
)

// Services holds everything the commands need.
type Services struct {
	Settings   driving.SettingsService
	Recipes    driving.RecipeService
	Analyzer   driving.RecipeAnalyzer
	References driving.ReferenceService
	Cuisines   driving.CuisineService

	// ConfigErr is set when settings are incomplete and the pipeline
	// services could not be built. Commands that need them report it.
	ConfigErr error
}

// Options are the global flags passed to the bootstrap function.
type Options struct {
	ConfigDir string
	DryRun    bool
}

// BootstrapFunc builds the services once flags are parsed.
type BootstrapFunc func(opts Options) (*Services, error)

var bootstrap BootstrapFunc

// Global flags.
var (
	verbose   bool
	configDir string
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "cookbook",
	Short: "Import recipes into a Notion cookbook",
	Long: `Cookbook extracts recipes from web pages, analyses their nutrition,
classifies their cuisine and writes them as pages in a Notion database,
linked to shared ingredient and cuisine entries.

Run 'cookbook serve' for the HTTP interface or 'cookbook recipe create <url>'
to import a single recipe from the terminal.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.cookbook)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Keep pages and entities in memory instead of writing to Notion")
}

// SetServices injects the services used by the commands.
// Services set here take precedence over the bootstrap function.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	settingsService = s.Settings
	recipeService = s.Recipes
	analyzerService = s.Analyzer
	referenceService = s.References
	cuisineService = s.Cuisines
	configErr = s.ConfigErr
}

// SetBootstrap sets the function that builds services after flag parsing.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Interrupt and terminate signals cancel
// the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || settingsService != nil {
		return nil
	}

	services, err := bootstrap(Options{ConfigDir: configDir, DryRun: dryRun})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	return nil
}

// requireService returns an error naming the missing service, explained by
// configErr when settings are incomplete.
func requireService(name string, present bool) error {
	if present {
		return nil
	}
	if configErr != nil {
		return fmt.Errorf("%s unavailable: %w\nRun 'cookbook settings show' to see what is missing", name, configErr)
	}
	return errors.New(name + " not configured")
}
