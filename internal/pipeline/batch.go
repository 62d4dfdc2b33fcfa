// Package pipeline runs the transpilation engine over whole directory trees:
// scan, transpile (optionally through the disk cache), write, with per-file
// progress events for whichever sink the caller wires in.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"py2ts/internal/driver"
)

// Request describes one batch run.
type Request struct {
	// Dir is the directory scanned for *.py files.
	Dir string
	// OutDir receives the *.ts outputs, mirroring the source tree. When
	// empty, outputs are written next to their sources.
	OutDir string
	// Jobs caps the worker pool; 0 means NumCPU.
	Jobs int
	// Cache, when non-nil, serves unchanged sources from disk.
	Cache *driver.DiskCache
	// Progress receives per-file events; nil disables reporting.
	Progress ProgressSink
}

// FileResult is the outcome for a single source file.
type FileResult struct {
	// Path is the source path relative to Request.Dir (slash-separated);
	// it is also the spelling recorded in the output header.
	Path string
	// OutPath is the absolute path of the written .ts file.
	OutPath string
	// Lines is the source line count.
	Lines     int
	FromCache bool
	Err       error
	Elapsed   time.Duration
}

// Result aggregates a whole batch run.
type Result struct {
	Files      []FileResult
	Transpiled int
	Cached     int
	Failed     int
	Timings    Timings
	Elapsed    time.Duration
}

// ListFiles returns the sorted, Dir-relative paths of all *.py files under dir.
func ListFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".py") {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// OutputName maps a source path to its TypeScript sibling: hello.py -> hello.ts.
func OutputName(path string) string {
	return strings.TrimSuffix(path, ".py") + ".ts"
}

// Run transpiles every *.py file under req.Dir. Per-file failures are
// recorded in the result and do not abort the batch; only setup failures
// (bad directory, cancelled context) return an error.
func Run(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, fmt.Errorf("missing batch request")
	}

	started := time.Now()

	files, err := ListFiles(req.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", req.Dir, err)
	}

	outDir := req.OutDir
	if outDir == "" {
		outDir = req.Dir
	}

	emitQueued(req.Progress, files)

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	res := &Result{Files: make([]FileResult, len(files))}
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, rel := range files {
		i, rel := i, rel
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fr := runOne(req, rel, filepath.Join(req.Dir, filepath.FromSlash(rel)), outDir)

			mu.Lock()
			res.Files[i] = fr
			switch {
			case fr.Err != nil:
				res.Failed++
			case fr.FromCache:
				res.Cached++
			default:
				res.Transpiled++
			}
			res.Timings.Add(StageTranspile, fr.Elapsed)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return res, err
	}

	res.Elapsed = time.Since(started)
	return res, nil
}

func runOne(req *Request, rel, abs, outDir string) FileResult {
	started := time.Now()
	fr := FileResult{Path: rel}

	emit(req.Progress, Event{File: rel, Stage: StageTranspile, Status: StatusWorking})

	tr, err := driver.TranspileWithCache(req.Cache, abs, rel)
	if err != nil {
		fr.Err = fmt.Errorf("%s: %w", rel, err)
		fr.Elapsed = time.Since(started)
		emit(req.Progress, Event{File: rel, Stage: StageTranspile, Status: StatusError, Err: fr.Err, Elapsed: fr.Elapsed})
		return fr
	}
	fr.FromCache = tr.FromCache
	fr.Lines = tr.File.LineCount()

	emit(req.Progress, Event{File: rel, Stage: StageWrite, Status: StatusWorking})

	outPath := filepath.Join(outDir, filepath.FromSlash(OutputName(rel)))
	if err := writeOutput(outPath, tr.Output); err != nil {
		fr.Err = fmt.Errorf("%s: %w", rel, err)
		fr.Elapsed = time.Since(started)
		emit(req.Progress, Event{File: rel, Stage: StageWrite, Status: StatusError, Err: fr.Err, Elapsed: fr.Elapsed})
		return fr
	}
	fr.OutPath = outPath

	fr.Elapsed = time.Since(started)
	emit(req.Progress, Event{File: rel, Stage: StageWrite, Status: StatusDone, Elapsed: fr.Elapsed})
	return fr
}

func writeOutput(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
