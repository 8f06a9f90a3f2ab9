package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnalayout/pkg/document"
	"github.com/matzehuels/rnalayout/pkg/layout"
	"github.com/matzehuels/rnalayout/pkg/pipeline"
)

// Tree output formats.
const (
	treeFormatDOT = "dot"
	treeFormatSVG = "svg"
)

// treeCommand creates the tree command for inspecting the layout tree.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		format string
		output string
		name   string
	)
	opts := layoutOptions()

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Export the layout tree of a molecule (debug)",
		Long: `Export the layout tree of a molecule for debugging.

Every pair becomes a box labeled with its bases, every unpaired base a leaf
and every multi-branch loop a junction point. Each node shows the position the
layout assigned to it.

The DOT output can be rendered with Graphviz; -f svg renders it directly.
Files with several molecules need --name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.applyLayout(cmd, &opts)
			return c.runTree(cmd.Context(), args[0], name, format, output, opts)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", treeFormatDOT, "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "molecule to export")
	addLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runTree(ctx context.Context, input, name, format, output string, opts pipeline.Options) error {
	if format != treeFormatDOT && format != treeFormatSVG {
		return fmt.Errorf("unknown format %q (want dot or svg)", format)
	}

	mols, err := document.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	idx := 0
	switch {
	case name != "":
		if idx, err = findMolecule(mols, name); err != nil {
			return err
		}
	case len(mols) > 1:
		return fmt.Errorf("%s holds %d molecules; select one with --name", input, len(mols))
	}

	root, err := buildTree(mols[idx], opts)
	if err != nil {
		return fmt.Errorf("%s: %w", mols[idx].DisplayName(idx), err)
	}
	if root == nil {
		loggerFromContext(ctx).Warn("molecule has no pairs; the tree is empty", "molecule", mols[idx].DisplayName(idx))
	}

	var data []byte
	if format == treeFormatSVG {
		if data, err = layout.RenderTreeSVG(ctx, root); err != nil {
			return fmt.Errorf("render tree: %w", err)
		}
	} else {
		data = []byte(layout.ToDOT(root))
	}

	if output == "" {
		_, err := c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	out := c.printer()
	out.success("Layout tree exported")
	out.file(output)
	return nil
}

// buildTree parses mol and builds its placed layout tree with the spacing and
// pseudoknot handling in opts.
func buildTree(mol document.Molecule, opts pipeline.Options) (*layout.Node, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	parsed, err := mol.Parse()
	if err != nil {
		return nil, err
	}
	engineOpts := []layout.Option{
		layout.WithPrimarySpacing(opts.PrimarySpacing),
		layout.WithPairSpacing(opts.PairSpacing),
	}
	if !opts.Strict {
		engineOpts = append(engineOpts, layout.WithPseudoknotFiltering())
	}
	engine, err := layout.NewEngine(engineOpts...)
	if err != nil {
		return nil, err
	}
	return engine.Tree(parsed.Structure)
}
