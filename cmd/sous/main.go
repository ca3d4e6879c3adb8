package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/sous/internal/adapter"
	"github.com/mmcdole/sous/internal/catalog"
	"github.com/mmcdole/sous/internal/importer"
	"github.com/mmcdole/sous/internal/service"
	"github.com/mmcdole/sous/internal/store"
	"github.com/mmcdole/sous/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "sous",
	Short: "A recipe box, meal planner, and grocery list for the terminal",
	Long: `sous keeps your recipes, week plan, and grocery list in one place.

Browse a seed catalog of recipes, bookmark the ones you like, add your
own, and cook along step by step. Everything is stored locally.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sous %s\n", Version)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import a recipe from a web page and save it",
	Long: `Fetches a web page, extracts the recipe from its structured data
(JSON-LD or microdata), and saves it to your recipes without opening
the interactive interface.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0])
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local data (recipes, plan, groceries, profile)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReset()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd, importCmd, resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices wires up the store, seed catalog, and services shared by
// the TUI and the non-interactive subcommands. The returned cleanup
// closes the store.
func buildServices() (*tui.Services, func(), error) {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	st, err := store.New(cfg.Data.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open local store: %w", err)
	}

	seed, err := catalog.NewSource()
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to load seed catalog: %w", err)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Importer.TimeoutSeconds) * time.Second,
	}

	deps := &tui.Services{
		Recipes:  service.NewRecipeService(seed, st, logger),
		Search:   service.NewSearchService(logger),
		Planner:  service.NewPlannerService(st, logger),
		Grocery:  service.NewGroceryService(st, logger),
		Profile:  service.NewProfileService(st, logger),
		Importer: importer.New(httpClient, logger),
		Opener:   adapter.NewOpener(cfg.Browser.Command, logger),
		Config:   cfg,
		Logger:   logger,
	}

	cleanup := func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}
	return deps, cleanup, nil
}

func runTUI() error {
	deps, cleanup, err := buildServices()
	if err != nil {
		return err
	}
	defer cleanup()

	deps.Logger.Info("starting sous", "version", Version)

	p := tea.NewProgram(
		tui.NewModel(deps),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		deps.Logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	deps.Logger.Info("shutting down")
	return nil
}

func runImport(rawURL string) error {
	deps, cleanup, err := buildServices()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Printf("Fetching %s ...\n", rawURL)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	recipe, err := deps.Importer.Import(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	id, err := deps.Recipes.Save(ctx, recipe)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}

	fmt.Printf("Imported %q (%d ingredients, %d steps) as recipe #%d\n",
		recipe.Title, len(recipe.Ingredients), len(recipe.Steps), id)
	return nil
}

func runReset() error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("This deletes everything under %s.\n", cfg.Data.Dir)
	fmt.Print("Type 'yes' to continue: ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if strings.TrimSpace(input) != "yes" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := adapter.ClearData(cfg); err != nil {
		return err
	}
	fmt.Println("Local data cleared.")
	return nil
}
