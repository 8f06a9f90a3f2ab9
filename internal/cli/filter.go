package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnalayout/pkg/rna"
	"github.com/matzehuels/rnalayout/pkg/server"
)

// filterCommand creates the filter command for removing pseudoknots.
func (c *CLI) filterCommand() *cobra.Command {
	var (
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "filter [dot-bracket]",
		Short: "Remove pseudoknotted pairs from a structure",
		Long: `Remove pseudoknotted pairs from a dot-bracket structure.

Square, curly and angle brackets mark pairs that cross the parenthesized
ones. Of every set of crossing pairs the one opened first is kept; the
others are reported and removed. The result is a nested structure that can be
laid out.

Example:
  rnalayout filter '((..[[..))..]]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFilter(cmd.Context(), args[0], asJSON, noCache)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runFilter(ctx context.Context, structure string, asJSON, noCache bool) error {
	s, err := rna.ParseDotBracket(structure)
	if err != nil {
		return fmt.Errorf("parse structure: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Filter(ctx, s)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(server.FilterResponse{
			Structure: res.DotBracket(),
			Pairs:     res.Structure.Pairs(),
			Removed:   res.Removed,
		})
	}

	fmt.Fprintln(c.Out, res.DotBracket())
	out := c.printer()
	if len(res.Removed) == 0 {
		out.info("No pseudoknots")
		return nil
	}
	out.warning("Removed %d pseudoknotted pair(s)", len(res.Removed))
	for _, p := range res.Removed {
		out.detail("%d-%d", p.I, p.J)
	}
	return nil
}
