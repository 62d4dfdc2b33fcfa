package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"py2ts/internal/driver"
	"py2ts/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] [dir]",
	Short: "Transpile every *.py file under a directory",
	Long: `Batch scans a directory tree for Python files and transpiles each one
into a .ts sibling under the output directory, mirroring the source layout.
Without a directory argument, the source directory comes from the nearest
py2ts.toml manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("out", "", "output directory (default: from manifest, else alongside sources)")
	batchCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = all CPUs)")
	batchCmd.Flags().Bool("ui", false, "interactive progress display")
	batchCmd.Flags().Bool("no-cache", false, "bypass the transpilation cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	req, files, err := buildBatchRequest(cmd, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		notef(cmd, "no *.py files under %s", req.Dir)
		return nil
	}

	useUI, _ := cmd.Flags().GetBool("ui")
	var res *pipeline.Result
	if useUI && isTerminal(os.Stdout) {
		res, err = runBatchWithUI(cmd.Context(), "transpiling "+req.Dir, files, req)
	} else {
		res, err = pipeline.Run(cmd.Context(), req)
	}
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	return reportBatch(cmd, res)
}

// buildBatchRequest resolves directory, output and worker settings from the
// argument, the flags and the manifest (in that order of precedence).
func buildBatchRequest(cmd *cobra.Command, args []string) (*pipeline.Request, []string, error) {
	outDir, _ := cmd.Flags().GetString("out")
	jobs, _ := cmd.Flags().GetInt("jobs")

	var dir string
	if len(args) == 1 {
		dir = args[0]
	} else {
		manifest, ok, err := loadProjectManifest("")
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, fmt.Errorf("%s", noPy2tsTomlMessage)
		}
		dir = filepath.Join(manifest.Root, manifest.Config.Transpile.Source)
		if outDir == "" && manifest.Config.Transpile.Out != "" {
			outDir = filepath.Join(manifest.Root, manifest.Config.Transpile.Out)
		}
		if jobs == 0 {
			jobs = manifest.Config.Transpile.Jobs
		}
	}

	if st, err := os.Stat(dir); err != nil {
		return nil, nil, fmt.Errorf("cannot open %s: %w", dir, err)
	} else if !st.IsDir() {
		return nil, nil, fmt.Errorf("%s is not a directory", dir)
	}

	var cache *driver.DiskCache
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		var err error
		cache, err = driver.OpenDiskCache("py2ts")
		if err != nil {
			// Без кеша работать можно, просто медленнее
			notef(cmd, "cache unavailable: %v", err)
			cache = nil
		}
	}

	files, err := pipeline.ListFiles(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	return &pipeline.Request{
		Dir:    dir,
		OutDir: outDir,
		Jobs:   jobs,
		Cache:  cache,
	}, files, nil
}

func reportBatch(cmd *cobra.Command, res *pipeline.Result) error {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	errColor := color.New(color.FgRed)
	if !useColor(cmd, os.Stderr) {
		errColor.DisableColor()
	}

	for _, fr := range res.Files {
		if fr.Err != nil {
			errColor.Fprintf(os.Stderr, "error: %v\n", fr.Err)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "transpiled %d file(s), %d cached, %d failed in %s\n",
			res.Transpiled, res.Cached, res.Failed, res.Elapsed.Round(time.Millisecond))
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprintf(cmd.OutOrStdout(), "  transpile: %s\n",
			res.Timings.Duration(pipeline.StageTranspile).Round(time.Microsecond))
	}

	if res.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", res.Failed)
	}
	return nil
}
