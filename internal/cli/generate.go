package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/crossgrid/pkg/errors"
	"github.com/matzehuels/crossgrid/pkg/generate"
)

// generateOpts holds the flags of the generate command. Zero values defer
// to the configuration file.
type generateOpts struct {
	limit         int
	iterations    int
	timeout       time.Duration
	format        string
	firstSeedOnly bool
	noCache       bool
	refresh       bool
	output        string
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate WORD...",
		Short: "Generate ranked crossword grids from up to five words",
		Long: `Generate searches every arrangement of the words, keeps the valid grids and
prints them ranked by crossings, area and squareness.

Words may also be piped on stdin, separated by spaces, commas or newlines.`,
		Example: `  crossgrid generate cat art tar
  crossgrid generate --format json --limit 3 cat art
  echo "alpha,beta,gamma" | crossgrid generate --format svg -o grids.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			words := args
			if in := cmd.InOrStdin(); len(words) == 0 && !isTerminalReader(in) {
				var err error
				if words, err = readWords(in); err != nil {
					return err
				}
			}
			return c.runGenerate(cmd.Context(), cmd, words, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.limit, "limit", "n", 0, "maximum number of grids to print (default from config, 20)")
	f.IntVar(&opts.iterations, "iterations", 0, "maximum number of candidate grids to examine (default from config, 10000)")
	f.DurationVar(&opts.timeout, "timeout", 0, "search time limit (default from config, 10s)")
	f.StringVarP(&opts.format, "format", "f", "", "output format: text, json or svg")
	f.BoolVar(&opts.firstSeedOnly, "first-seed-only", false, "only start the search from the first word")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	f.BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	f.StringVarP(&opts.output, "output", "o", "", "write output to a file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{generate.FormatText, "json", generate.FormatSVG}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// generateOptions merges the flags over the configured defaults. Flags set
// explicitly must be positive; zero would otherwise fall back to the default.
func (c *CLI) generateOptions(cmd *cobra.Command, opts generateOpts) (generate.Options, error) {
	o := c.Config.Generate.Options()
	flags := cmd.Flags()
	if flags.Changed("limit") {
		if opts.limit < 1 {
			return o, errors.New(errors.ErrCodeInvalidOptions, "--limit must be at least 1, got %d", opts.limit)
		}
		o.ResultLimit = opts.limit
	}
	if flags.Changed("iterations") {
		if opts.iterations < 1 {
			return o, errors.New(errors.ErrCodeInvalidOptions, "--iterations must be at least 1, got %d", opts.iterations)
		}
		o.IterationLimit = opts.iterations
	}
	if flags.Changed("timeout") {
		if opts.timeout <= 0 {
			return o, errors.New(errors.ErrCodeInvalidOptions, "--timeout must be positive, got %s", opts.timeout)
		}
		o.TimeLimit = opts.timeout
	}
	if flags.Changed("format") {
		o.Format = opts.format
	}
	if flags.Changed("first-seed-only") {
		o.FirstSeedOnly = opts.firstSeedOnly
	}
	o.Refresh = opts.refresh
	return o, nil
}

func (c *CLI) runGenerate(ctx context.Context, cmd *cobra.Command, words []string, opts generateOpts) error {
	logger := loggerFromContext(ctx)
	genOpts, err := c.generateOptions(cmd, opts)
	if err != nil {
		return err
	}
	format, err := generate.ParseFormat(genOpts.Format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sl := newSearchLogger(logger, time.Second)
	genOpts.Logger = logger
	genOpts.Progress = sl.onProgress

	var spinner *Spinner
	if isTerminal(os.Stderr) {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Searching grids for %s...", strings.Join(words, ", ")))
		spinner.Start()
	}
	prog := newProgress(logger)
	rep, err := runner.Generate(ctx, words, genOpts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if !rep.Cached {
		logger.Debug("search finished", "nodes", sl.last.Nodes, "candidates", rep.Candidates)
	}
	prog.done(fmt.Sprintf("Found %d grids", rep.NumGrids))
	if rep.IterationLimitReached() {
		printWarning("Iteration limit reached; results may be incomplete (raise --iterations)")
	}

	data, err := runner.Render(ctx, rep, format)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Generated %d grids", len(rep.Crosswords))
	printStats(rep)
	printFile(opts.output)
	if len(rep.Crosswords) > 0 {
		printNextStep("Browse them interactively", appName+" browse "+strings.Join(rep.Words, " "))
	}
	return nil
}

// readWords splits r on whitespace and commas.
func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, strings.FieldsFunc(sc.Text(), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})...)
	}
	return words, sc.Err()
}

func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
