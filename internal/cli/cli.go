// Package cli implements the sunbiz command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/buildinfo"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/cache"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/registry"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/search"
)

// appName is the application name used for commands and display.
const appName = "sunbiz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sunbiz looks up registered Florida businesses by name",
		Long:         `Sunbiz searches the Florida Division of Corporations registry (sunbiz.org) for business entities matching a partial name, with a short-lived result cache to avoid redundant fetches.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newService builds a lookup service for one-shot CLI use.
func (c *CLI) newService(baseURL string, noCache bool) *search.Service {
	var store cache.Store = cache.NewMemoryStore(cache.DefaultCapacity)
	if noCache {
		store = cache.NewNullStore()
	}
	return search.New(registry.NewClient(baseURL), store, c.Logger)
}
