package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/assets"
	"github.com/alnah/go-richtext/internal/config"
	"github.com/alnah/go-richtext/internal/fileutil"
	"github.com/alnah/go-richtext/internal/page"
)

// htmlExt is the extension of rendered files.
const htmlExt = ".html"

// renderJob bundles what every file in a render run shares.
type renderJob struct {
	loader   *documentLoader
	renderer *richtext.Renderer
	wrapper  *page.Wrapper // nil for fragments
	css      string
	cfg      *config.Config
}

// runRender implements "richtext render".
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
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
	mergeRenderFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	job, err := newRenderJob(cfg, logger)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}
	if inputPath == stdinArg {
		return renderStdin(ctx, job, flags.output, env)
	}

	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir, htmlExt)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	workers := resolveWorkers(cfg.Workers)
	logger.Debug("rendering", zap.Int("files", len(files)), zap.Int("workers", workers))

	results := runBatch(ctx, files, workers, job.renderFile)
	printResults(results, flags.common, env)
	return batchError(results)
}

// mergeRenderFlags applies flags over config. Flags always win.
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Output.DefaultDir = f.output
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.standalone {
		cfg.Output.Standalone = true
	}
	if f.style != "" {
		cfg.Page.Style = f.style
	}
	if f.template != "" {
		cfg.Page.Template = f.template
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.baseURL != "" {
		cfg.Render.BaseURL = f.baseURL
	}
	if f.noHeadingInference {
		off := false
		cfg.Render.HeadingInference = &off
	}
	if f.title != "" {
		cfg.Page.Title = f.title
	}
	if f.lang != "" {
		cfg.Page.Lang = f.lang
	}
}

// newRenderJob builds the renderer and, for standalone output, the page
// wrapper and stylesheet.
func newRenderJob(cfg *config.Config, logger *zap.Logger) (*renderJob, error) {
	opts := []richtext.Option{richtext.WithClasses(cfg.Render.Classes)}
	if cfg.Render.BaseURL != "" {
		opts = append(opts, richtext.WithBaseURL(cfg.Render.BaseURL))
	}
	if !cfg.Render.HeadingInferenceEnabled() {
		opts = append(opts, richtext.WithHeadingInference(nil))
	}
	renderer, err := richtext.NewRenderer(opts...)
	if err != nil {
		return nil, err
	}

	job := &renderJob{loader: newDocumentLoader(logger), renderer: renderer, cfg: cfg}
	if !cfg.Output.Standalone {
		return job, nil
	}

	resolver, err := assets.NewResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	tmplName := cfg.Page.Template
	if tmplName == "" {
		tmplName = assets.DefaultTemplateName
	}
	tmpl, err := resolver.LoadTemplate(tmplName)
	if err != nil {
		return nil, err
	}
	if job.wrapper, err = page.New(tmpl); err != nil {
		return nil, fmt.Errorf("%w: template %q: %v", ErrUsage, tmplName, err)
	}

	if job.css, err = loadStyle(resolver, cfg.Page.Style); err != nil {
		return nil, err
	}
	return job, nil
}

// loadStyle reads a stylesheet given as a file path or an asset name.
// An empty value selects the default style.
func loadStyle(loader assets.Loader, style string) (string, error) {
	if style == "" {
		style = assets.DefaultStyleName
	}
	if !fileutil.IsFilePath(style) {
		return loader.LoadStyle(style)
	}

	data, err := os.ReadFile(style) // #nosec G304 -- user-provided stylesheet
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", assets.ErrStyleNotFound, style)
		}
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(data), nil
}

// output renders doc as a fragment or a standalone page titled after name.
func (j *renderJob) output(ctx context.Context, doc *richtext.Document, name string) (string, error) {
	body := j.renderer.RenderHTML(doc.Root)
	if j.wrapper == nil {
		return body, nil
	}

	title := j.cfg.Page.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return j.wrapper.Wrap(ctx, page.Data{Title: title, Lang: j.cfg.Page.Lang, CSS: j.css, Body: body})
}

// renderFile is the per-file batch step.
func (j *renderJob) renderFile(ctx context.Context, f FileJob) ([]error, error) {
	doc, err := j.loader.loadFile(ctx, f.InputPath)
	if err != nil {
		return nil, err
	}
	out, err := j.output(ctx, doc, f.InputPath)
	if err != nil {
		return doc.Warnings, err
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return doc.Warnings, fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(out), filePermissions); err != nil {
		return doc.Warnings, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return doc.Warnings, nil
}

// renderStdin renders a Lexical payload from stdin to outPath or stdout.
func renderStdin(ctx context.Context, j *renderJob, outPath string, env *Environment) error {
	data, err := readStdin(env.Stdin)
	if err != nil {
		return err
	}
	doc, err := j.loader.load(ctx, "stdin", data)
	if err != nil {
		return err
	}
	out, err := j.output(ctx, doc, "stdin")
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = fmt.Fprintln(env.Stdout, out)
		return err
	}
	if err := fileutil.WriteFileAtomic(outPath, []byte(out), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// printResults reports per-file outcomes on stdout and failures on stderr.
func printResults(results []FileResult, common commonFlags, env *Environment) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if common.quiet {
			continue
		}
		if common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %d warnings)\n",
				r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), len(r.Warnings))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if s := countResults(results); !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", s.Succeeded, s.Failed)
	}
}
