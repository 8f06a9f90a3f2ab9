package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rnalayout/pkg/document"
	"github.com/matzehuels/rnalayout/pkg/pipeline"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// layoutFlags holds the layout command flags that are not pipeline options.
type layoutFlags struct {
	output  string
	name    string
	pick    bool
	noCache bool
	coords  int
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags
	opts := layoutOptions()

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute base coordinates for a molecule file",
		Long: `Compute base coordinates for a molecule file.

The input may be a molecule document (.json), a molecule library (.toml) or
Vienna text, where each record is a ">name" header followed by the sequence
and a dot-bracket structure line.

Each molecule is written to its own layout document. With a single molecule
the default output is <input>.layout.json; with several, each file is named
<input>.<molecule>.layout.json, or placed in the directory given by -o.

Pseudoknots are removed before layout unless --strict is set. Results are
cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config.applyLayout(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file or directory, - for stdout (default: next to the input)")
	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "lay out only the molecule with this name")
	cmd.Flags().BoolVar(&flags.pick, "pick", false, "choose the molecule interactively")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().IntVar(&flags.coords, "coords", 0, "print a table with the first N coordinates (-1 for all)")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout reads the molecules, computes their layouts and writes the output
// documents.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, flags layoutFlags) error {
	logger := loggerFromContext(ctx)
	out := c.printer()

	mols, err := document.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	mols, err = c.selectMolecules(ctx, mols, flags)
	if errors.Is(err, errNoSelection) {
		out.detail("No selection made")
		return nil
	}
	if err != nil {
		return err
	}
	if flags.output == stdoutPath && len(mols) > 1 {
		return fmt.Errorf("%s holds %d molecules; select one with --name or --pick to write to stdout", input, len(mols))
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinner(ctx, c.Err, "Computing layout...")
	if flags.output != stdoutPath {
		spinner.Start()
		defer spinner.Stop()
	}

	results := make([]*pipeline.Result, 0, len(mols))
	for i, mol := range mols {
		spinner.SetMessage(fmt.Sprintf("Computing layout for %s...", mol.DisplayName(i)))
		res, err := runner.Layout(ctx, mol, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", mol.DisplayName(i), err)
		}
		results = append(results, res)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	spinner.Stop()

	if flags.output == stdoutPath {
		return document.WriteLayout(c.Out, results[0].Layout)
	}

	paths := outputPaths(input, flags.output, mols)
	if len(mols) > 1 && flags.output != "" {
		if err := os.MkdirAll(flags.output, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	for i, res := range results {
		if err := document.WriteLayoutFile(paths[i], res.Layout); err != nil {
			return fmt.Errorf("write output %s: %w", paths[i], err)
		}
	}
	prog.done(fmt.Sprintf("Laid out %d molecule(s)", len(results)))

	for i, res := range results {
		out.success("Layout complete: %s", mols[i].DisplayName(i))
		out.file(paths[i])
		out.stats(res.Stats.Length, res.Stats.Pairs, res.Stats.RemovedPairs, res.CacheInfo.LayoutHit)
		if flags.coords != 0 {
			out.coordinates(res.Layout, flags.coords)
		}
	}
	out.newline()
	out.nextStep("Inspect the layout tree", appName+" tree "+input)

	return nil
}

// selectMolecules narrows mols to the one chosen by --name or --pick.
func (c *CLI) selectMolecules(ctx context.Context, mols []document.Molecule, flags layoutFlags) ([]document.Molecule, error) {
	switch {
	case flags.name != "":
		i, err := findMolecule(mols, flags.name)
		if err != nil {
			return nil, err
		}
		return mols[i : i+1], nil
	case flags.pick && len(mols) > 1:
		i, err := c.pickMolecule(ctx, mols)
		if err != nil {
			return nil, err
		}
		return mols[i : i+1], nil
	}
	return mols, nil
}

// findMolecule returns the index of the molecule whose display name is name.
func findMolecule(mols []document.Molecule, name string) (int, error) {
	for i, m := range mols {
		if m.DisplayName(i) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no molecule named %q", name)
}

// outputPaths returns the layout file path for each molecule. A name that
// slugs to nothing becomes molecule-N; a name whose file is already taken gets
// the molecule's 1-based index appended.
func outputPaths(input, output string, mols []document.Molecule) []string {
	paths := make([]string, len(mols))
	if len(mols) == 1 {
		paths[0] = output
		if output == "" {
			paths[0] = trimExt(input) + ".layout.json"
		}
		return paths
	}
	taken := make(map[string]bool, len(mols))
	for i, m := range mols {
		index := strconv.Itoa(i + 1)
		base := slug(m.DisplayName(i))
		if base == "" {
			base = "molecule-" + index
		}
		name := base
		for n := 1; taken[name]; n++ {
			name = base + "-" + index
			if n > 1 {
				name += "-" + strconv.Itoa(n)
			}
		}
		taken[name] = true
		if output != "" {
			paths[i] = filepath.Join(output, name+".layout.json")
		} else {
			paths[i] = trimExt(input) + "." + name + ".layout.json"
		}
	}
	return paths
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// slug turns a molecule name into a file name component.
func slug(name string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == '.':
			return unicode.ToLower(r)
		default:
			return '-'
		}
	}, name)
	return strings.Trim(s, "-.")
}
