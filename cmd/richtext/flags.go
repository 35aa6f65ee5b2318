package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing errors.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	quiet   bool
	verbose bool
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common             commonFlags
	config             string
	output             string
	workers            int
	standalone         bool
	style              string
	template           string
	assetPath          string
	baseURL            string
	noHeadingInference bool
	title              string
	lang               string
}

// importFlags holds flags for the import command.
type importFlags struct {
	common  commonFlags
	output  string
	compact bool
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common  commonFlags
	config  string
	workers int
	strict  bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// newFlagSet creates a FlagSet that reports errors to w instead of exiting.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args, passing flag.ErrHelp through unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)
	registerRenderFlags(fs, f)

	rest, err := parseFlagSet(fs, args)
	return f, rest, err
}

// registerRenderFlags defines the render flags on fs. Completion reads the
// same FlagSet.
func registerRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.standalone, "standalone", false, "wrap output in a full HTML page")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path (standalone)")
	fs.StringVar(&f.template, "template", "", "page template name (standalone)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.baseURL, "base-url", "", "resolve relative links against this URL")
	fs.BoolVar(&f.noHeadingInference, "no-heading-inference", false, "render bold-led paragraphs as paragraphs")
	fs.StringVar(&f.title, "title", "", "page title (standalone, default: file name)")
	fs.StringVar(&f.lang, "lang", "", "page language (standalone, default: en)")
	addCommonFlags(fs, &f.common)
}

func parseImportFlags(args []string, w io.Writer) (*importFlags, []string, error) {
	f := &importFlags{}
	fs := newFlagSet("import", w, printImportUsage)
	registerImportFlags(fs, f)

	rest, err := parseFlagSet(fs, args)
	return f, rest, err
}

func registerImportFlags(fs *flag.FlagSet, f *importFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output JSON file (default: stdout)")
	fs.BoolVar(&f.compact, "compact", false, "write JSON without indentation")
	addCommonFlags(fs, &f.common)
}

func parseCheckFlags(args []string, w io.Writer) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newFlagSet("check", w, printCheckUsage)
	registerCheckFlags(fs, f)

	rest, err := parseFlagSet(fs, args)
	return f, rest, err
}

func registerCheckFlags(fs *flag.FlagSet, f *checkFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.strict, "strict", false, "fail when any node is skipped")
	addCommonFlags(fs, &f.common)
}
