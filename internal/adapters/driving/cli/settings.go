package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show application settings",
	Long: `Show the resolved settings. Values come from the config file and are
overridden by environment variables when those are set.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Backend.Description())
	cmd.Println()

	cmd.Println("[Notion]")
	cmd.Printf("  Token: %s\n", secretOrUnset(settings.Notion.Token))
	cmd.Printf("  Version: %s\n", settings.Notion.Version)
	cmd.Printf("  Recipe database: %s\n", valueOrUnset(settings.Notion.RecipeDatabaseID))
	cmd.Printf("  Ingredient database: %s\n", valueOrUnset(settings.Notion.IngredientDatabaseID))
	cmd.Printf("  Cuisine database: %s\n", valueOrUnset(settings.Notion.CuisineDatabaseID))
	cmd.Printf("  Requests per second: %g\n", settings.Notion.RequestsPerSecond)
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Notion.IsConfigured()))
	cmd.Println()

	cmd.Println("[Recipe API]")
	cmd.Printf("  API Key: %s\n", secretOrUnset(settings.RecipeAPI.APIKey))
	cmd.Printf("  Host: %s\n", settings.RecipeAPI.Host)
	cmd.Printf("  Base URL: %s\n", settings.RecipeAPI.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.RecipeAPI.Timeout)
	cmd.Printf("  Status: %s\n", configuredStatus(settings.RecipeAPI.IsConfigured()))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Println()

	// Validation
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Set the missing values in the config file or the environment.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func secretOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return maskAPIKey(v)
}

// maskAPIKey masks an API key for display.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
