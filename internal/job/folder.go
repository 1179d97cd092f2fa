package job

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/siyan12/csvtranslator/internal/translate"
)

// FileError records a file that could not be processed in folder mode.
type FileError struct {
	File string
	Err  error
}

// FolderResult aggregates a folder run: the merged summary of every file
// that completed plus the files that failed outright.
type FolderResult struct {
	Summary *Summary
	Errors  []FileError
}

// EnsureDirectories creates the input and output directories if missing,
// so a fresh install has somewhere to drop files.
func EnsureDirectories(inputDir, outputDir string) error {
	if err := os.MkdirAll(inputDir, 0755); err != nil {
		return fmt.Errorf("failed to create input directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// ListCSVFiles returns the .csv files directly under dir, sorted by name.
func ListCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// RunFolder translates every CSV in inputDir into outputDir under the same
// filename, using req as the template for each file's job. A file that
// fails fatally is recorded and the remaining files still run, except for
// credential failures, which abort the whole batch.
func (r *Runner) RunFolder(ctx context.Context, inputDir, outputDir string, req Request, logf func(string, ...any)) (*FolderResult, error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if err := EnsureDirectories(inputDir, outputDir); err != nil {
		return nil, err
	}
	files, err := ListCSVFiles(inputDir)
	if err != nil {
		return nil, err
	}

	result := &FolderResult{Summary: NewSummary()}
	if len(files) == 0 {
		logf("No CSV files found in %s", inputDir)
		return result, nil
	}

	logf("Found %d CSV files, starting...", len(files))
	for i, name := range files {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		logf("[%d/%d] Processing file: %s", i+1, len(files), name)

		fileReq := req
		fileReq.InputPath = filepath.Join(inputDir, name)
		fileReq.OutputPath = filepath.Join(outputDir, name)

		h, err := r.Start(ctx, fileReq)
		if err != nil {
			return result, err
		}
		for ev := range h.Events() {
			if ev.Kind == EventLog {
				logf("  %s", ev.Message)
			}
		}
		sum, err := h.Wait()
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			// A bad credential will fail every file the same way.
			if translate.IsAuth(err) {
				return result, err
			}
			logf("  failed to process %s: %v", name, err)
			result.Errors = append(result.Errors, FileError{File: name, Err: err})
			continue
		}
		logf("  %s", sum)
		result.Summary.Merge(sum)
	}

	logf("All processing completed: %s", result.Summary)
	return result, nil
}
