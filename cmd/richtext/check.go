package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-richtext"
)

// ErrDocumentWarnings is returned by "check --strict" when a document
// parsed with skipped or flattened nodes.
var ErrDocumentWarnings = errors.New("document has warnings")

// runCheck implements "richtext check": parse every input and report
// skipped nodes without writing anything.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	ec, logger, err := setup(flags.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(flags.config, ec)
	if err != nil {
		return err
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	// Warnings are printed as results; keep the parser from logging them too.
	loader := newDocumentLoader(logger.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel)))

	inputPath, err := resolveInputPath(positional, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}

	var results []FileResult
	if inputPath == stdinArg {
		res := FileResult{InputPath: "stdin"}
		data, err := readStdin(env.Stdin)
		if err == nil {
			var doc *richtext.Document
			if doc, err = loader.load(ctx, "stdin", data); err == nil {
				res.Warnings = doc.Warnings
			}
		}
		res.Err = err
		results = []FileResult{res}
	} else {
		files, err := discoverFiles(inputPath, "", "")
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		results = runBatch(ctx, files, resolveWorkers(cfg.Workers), func(ctx context.Context, f FileJob) ([]error, error) {
			doc, err := loader.loadFile(ctx, f.InputPath)
			if err != nil {
				return nil, err
			}
			return doc.Warnings, nil
		})
	}

	warnings := printCheckResults(results, flags.common, env)
	if err := batchError(results); err != nil {
		return err
	}
	if flags.strict && warnings > 0 {
		return fmt.Errorf("%w: %d skipped or flattened nodes", ErrDocumentWarnings, warnings)
	}
	return nil
}

// printCheckResults writes one line per warning and returns the total.
func printCheckResults(results []FileResult, common commonFlags, env *Environment) int {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(env.Stdout, "%s: %v\n", r.InputPath, w)
		}
	}

	s := countResults(results)
	if !common.quiet {
		fmt.Fprintf(env.Stdout, "%d checked, %d failed, %d warnings\n", len(results), s.Failed, s.Warnings)
	}
	return s.Warnings
}
