package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aster/internal/astfmt"
	"aster/internal/diagfmt"
	"aster/internal/driver"
	"aster/internal/manifest"
	"aster/internal/source"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] [manifest.toml...]",
	Short: "Generate struct declarations from manifests",
	Long: `gen lowers every [[struct]] of the given manifests and prints the result.
Without arguments it looks for aster.toml in the current directory and its parents.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().String("emit", "source", "output kind (source|msgpack|json)")
	genCmd.Flags().Bool("align", false, "align field types in brace structs")
	genCmd.Flags().Int("indent", 4, "indent width in spaces")
	genCmd.Flags().Bool("tabs", false, "indent with tabs")
	genCmd.Flags().Int("jobs", 0, "max manifests processed in parallel (0=auto)")
	genCmd.Flags().String("out", "", "write one file per manifest into this directory")
	genCmd.Flags().Bool("cache", false, "reuse outputs from the user cache directory")
	genCmd.Flags().Bool("timings", false, "print per-manifest stage timings to stderr")
	genCmd.Flags().String("ui", "auto", "progress view on stderr (auto|on|off)")
}

var (
	errLabel  = color.New(color.FgRed, color.Bold)
	okLabel   = color.New(color.FgGreen, color.Bold)
	pathLabel = color.New(color.FgCyan)
)

func runGen(cmd *cobra.Command, args []string) (err error) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	opts, err := genOptions(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		found, ok, err := manifest.Find(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no %s found\nplease pass manifests explicitly, e.g.:\n  aster gen path/to/%s", manifest.FileName, manifest.FileName)
		}
		paths = []string{found}
	}

	if opts.Emit == driver.EmitMsgpack && opts.OutDir == "" && isTerminal(os.Stdout) {
		return errors.New("gen: refusing to write msgpack to a terminal, use --out or redirect stdout")
	}

	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	var (
		results []driver.Result
		genErr  error
	)
	if !quiet && shouldUseTUI(mode, len(paths)) {
		results, genErr = runGenWithUI(cmd.Context(), cmd.ErrOrStderr(), paths, opts)
	} else {
		results, genErr = driver.Generate(cmd.Context(), paths, opts)
	}
	if errors.Is(genErr, driver.ErrOutputClash) {
		return genErr
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var failed, items, cached int
	for _, r := range results {
		if timings && len(r.Timings.Stages) > 0 {
			if err := r.Timings.Print(errOut, r.Path); err != nil {
				return err
			}
		}
		if r.Err != nil {
			failed++
			if err := reportError(errOut, opts.Files, r.Err); err != nil {
				return err
			}
			continue
		}
		items += r.Structs
		if r.Cached {
			cached++
		}
		switch {
		case r.OutPath != "":
			if !quiet {
				fmt.Fprintf(errOut, "%s %s\n", okLabel.Sprint("wrote"), pathLabel.Sprint(r.OutPath))
			}
		default:
			if _, err := out.Write(r.Output); err != nil {
				return err
			}
		}
	}

	if !quiet {
		summary := fmt.Sprintf("%d manifest(s), %d failed, %d struct(s)", len(results), failed, items)
		if cached > 0 {
			summary += fmt.Sprintf(", %d from cache", cached)
		}
		label := okLabel
		if failed > 0 {
			label = errLabel
		}
		fmt.Fprintln(errOut, label.Sprint(summary))
	}
	if genErr != nil {
		return fmt.Errorf("gen: %d of %d manifest(s) failed", failed, len(results))
	}
	return nil
}

// reportError prints manifest errors with a source excerpt and anything else on one line.
func reportError(w io.Writer, files *source.FileSet, err error) error {
	var merr *manifest.Error
	if errors.As(err, &merr) && !merr.Span.IsDummy() {
		return diagfmt.Pretty(w, files, merr.Span, merr.Message(), diagfmt.PrettyOpts{Color: !color.NoColor})
	}
	_, werr := fmt.Fprintf(w, "%s %v\n", errLabel.Sprint("error:"), err)
	return werr
}

func genOptions(cmd *cobra.Command) (driver.Options, error) {
	var opts driver.Options
	flags := cmd.Flags()

	emitStr, err := flags.GetString("emit")
	if err != nil {
		return opts, err
	}
	if opts.Emit, err = driver.ParseEmit(emitStr); err != nil {
		return opts, err
	}

	var format astfmt.Options
	if format.AlignFields, err = flags.GetBool("align"); err != nil {
		return opts, err
	}
	if format.IndentWidth, err = flags.GetInt("indent"); err != nil {
		return opts, err
	}
	if format.UseTabs, err = flags.GetBool("tabs"); err != nil {
		return opts, err
	}
	if format.IndentWidth < 1 || format.IndentWidth > 16 {
		return opts, fmt.Errorf("--indent must be between 1 and 16, got %d", format.IndentWidth)
	}
	opts.Format = format

	if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, err
	}
	if opts.OutDir, err = flags.GetString("out"); err != nil {
		return opts, err
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return opts, err
	}
	if useCache {
		if opts.Cache, err = driver.OpenDiskCache("aster"); err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
	}
	opts.Files = source.NewFileSet()
	return opts, nil
}
