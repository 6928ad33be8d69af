package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/registry"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/search"
)

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	limit       int    // maximum matches to return (clamped server-side)
	noCache     bool   // bypass the result cache
	interactive bool   // live autocomplete TUI instead of one-shot output
	baseURL     string // registry site override, mostly for testing
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	opts := searchOpts{limit: search.DefaultLimit}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Look up registered businesses by partial name",
		Long: `Look up registered businesses whose name matches the query.

Results come from the live Sunbiz registry; repeated queries within a few
minutes are answered from the cache.

Examples:
  sunbiz search tesla
  sunbiz search "publix super" --limit 10
  sunbiz search --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := c.newService(opts.baseURL, opts.noCache)

			if opts.interactive {
				return c.runInteractive(svc, opts.limit)
			}
			if len(args) == 0 {
				return fmt.Errorf("a query is required unless --interactive is set")
			}
			return c.runSearch(cmd, svc, args[0], opts.limit)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "l", opts.limit, fmt.Sprintf("maximum matches to show (%d-%d)", search.MinLimit, search.MaxLimit))
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "live autocomplete prompt")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "registry site override")

	return cmd
}

// runSearch performs a one-shot lookup and renders the results as a table.
func (c *CLI) runSearch(cmd *cobra.Command, svc *search.Service, query string, limit int) error {
	p := newProgress(c.Logger)

	result, err := svc.Search(cmd.Context(), query, strconv.Itoa(limit))
	if err != nil {
		var upstream *registry.UpstreamError
		switch {
		case errors.Is(err, search.ErrQueryTooShort):
			printError("Query too short: at least 2 characters are needed")
			return err
		case errors.As(err, &upstream):
			printError("Registry answered with status %d", upstream.StatusCode)
			return err
		default:
			return err
		}
	}

	if len(result.Results) == 0 {
		printInfo("No matches for %q", query)
		return nil
	}

	fmt.Println(renderMatches(result.Results))
	for _, m := range result.Results {
		if m.URL != "" {
			printDetail("%s %s", m.Name, StyleLink.Render(m.URL))
		}
	}
	printFetchOrigin(result.FromCache)
	p.done("Found %d matches", len(result.Results))
	return nil
}
