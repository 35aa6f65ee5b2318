package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-richtext/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoFiles          = errors.New("no rich-text files found")
	ErrInvalidExtension = errors.New("file must have .json, .md or .markdown extension")
	ErrOutputCollision  = errors.New("inputs map to the same output file")
)

var (
	jsonExts     = []string{".json"}
	markdownExts = []string{".md", ".markdown"}
	inputExts    = append(append([]string{}, jsonExts...), markdownExts...)
)

// stdinArg selects standard input.
const stdinArg = "-"

// FileJob is a single input file and where its output goes.
type FileJob struct {
	InputPath  string
	OutputPath string
}

// resolveInputPath picks the positional argument, else input.defaultDir.
func resolveInputPath(args []string, defaultDir string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if defaultDir != "" {
		return defaultDir, nil
	}
	return "", ErrNoInput
}

// discoverFiles returns the inputs under inputPath. A file must have a
// supported extension; a directory is walked for supported files, mirroring
// its layout under outputDir. With a non-empty outExt, two inputs that
// resolve to one output path fail with ErrOutputCollision.
func discoverFiles(inputPath, outputDir, outExt string) ([]FileJob, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.HasExtension(inputPath, inputExts...) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []FileJob{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, outputDir, "", outExt)}}, nil
	}

	var files []FileJob
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.HasExtension(path, inputExts...) {
			return nil
		}
		files = append(files, FileJob{InputPath: path, OutputPath: resolveOutputPath(path, outputDir, inputPath, outExt)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}
	if outExt != "" {
		if err := checkOutputCollisions(files); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// checkOutputCollisions rejects batches where two inputs would write the
// same file, such as post.json beside post.md, or a directory rendered to
// a single -o file.
func checkOutputCollisions(files []FileJob) error {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		key := filepath.Clean(f.OutputPath)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrOutputCollision, prev, f.InputPath, f.OutputPath)
		}
		seen[key] = f.InputPath
	}
	return nil
}

// resolveOutputPath maps an input file to its output path with extension
// outExt. An outputDir that already ends in outExt names the file itself.
func resolveOutputPath(inputPath, outputDir, baseInputDir, outExt string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+outExt)
	}
	if strings.HasSuffix(outputDir, outExt) {
		return outputDir
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), base+outExt)
		}
	}
	return filepath.Join(outputDir, base+outExt)
}

// isMarkdown reports whether path is imported from Markdown rather than
// parsed as Lexical JSON.
func isMarkdown(path string) bool {
	return fileutil.HasExtension(path, markdownExts...)
}
