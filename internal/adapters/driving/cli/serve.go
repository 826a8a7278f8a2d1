package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cookbook/internal/adapters/driving/web"
	"github.com/custodia-labs/cookbook/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server.

Endpoints:
  GET  /                         server info
  GET  /recipe/analyze?url=      extracted recipe with nutrition
  GET  /recipe/create?url=&id=   import a recipe, streaming progress
  POST /recipe/create            import triggered by a database automation
  GET  /ingredient/{name}        look up an ingredient
  GET  /ingredient/create        create an ingredient (name, category)
  GET  /cuisine/{name}           look up a cuisine
  GET  /cuisine/create           create a cuisine (name, type)
  GET  /cuisine/classify         classify a recipe (title, ingredients)

Opening /recipe/create in a browser shows a progress page that redirects
to the new recipe page when the import finishes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from settings, :5000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireService("recipe service", recipeService != nil); err != nil {
		return err
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr == "" && settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		addr = settings.Server.Addr
	}

	server, err := web.NewServer(&web.Ports{
		Recipes:    recipeService,
		Analyzer:   analyzerService,
		References: referenceService,
		Cuisines:   cuisineService,
	})
	if err != nil {
		return err
	}

	logger.Section("cookbook " + version)
	cmd.Printf("Serving on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}
