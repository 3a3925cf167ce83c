package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/resource"
	"github.com/pact-ai/resdash/internal/urlstate"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Build a view link",
	Long: `Build a view link for a search and filter selection.

Statuses accept the full enum name or the short form (FAILED or
PROCESSING_STATE_FAILED). Flags may be repeated or comma separated.

Examples:
  resdash link --status failed --status processing
  resdash link --type Observation,Condition --search 00
  resdash view --link "$(resdash link --status failed)"`,
	Args: cobra.NoArgs,
	RunE: runLink,
}

var (
	linkStatuses []string
	linkTypes    []string
	linkSearch   string
	linkBase     string
)

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().StringSliceVar(&linkStatuses, "status", nil, "processing status to include (repeatable)")
	linkCmd.Flags().StringSliceVar(&linkTypes, "type", nil, "resource type to include (repeatable)")
	linkCmd.Flags().StringVar(&linkSearch, "search", "", "patient ID search term")
	linkCmd.Flags().StringVar(&linkBase, "base", "", "link base (default: view.base_url)")
}

// buildCriteria applies the selections through a store the same way the
// dashboard does.
func buildCriteria(statuses, types []string, search string) criteria.Criteria {
	store := criteria.NewStore(criteria.Default())
	for _, s := range statuses {
		state := resource.ParseProcessingState(s)
		if state == "" || store.Criteria().Statuses.Contains(state) {
			continue
		}
		store.ToggleStatus(state)
	}
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" || store.Criteria().Types.Contains(t) {
			continue
		}
		store.ToggleType(t)
	}
	store.SetSearchTerm(search)
	return store.SetEffectiveSearchTerm(search)
}

func runLink(cmd *cobra.Command, args []string) error {
	base := linkBase
	if base == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		base = cfg.View.BaseURL
	}

	c := buildCriteria(linkStatuses, linkTypes, linkSearch)
	fmt.Fprintln(cmd.OutOrStdout(), urlstate.Link(base, c))
	return nil
}
