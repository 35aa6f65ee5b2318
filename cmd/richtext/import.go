package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/fileutil"
)

// runImport implements "richtext import": Markdown in, Lexical JSON out.
func runImport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseImportFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	_, logger, err := setup(flags.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if len(positional) == 0 {
		return ErrNoInput
	}

	src, name := positional[0], positional[0]
	var data []byte
	if src == stdinArg {
		name = "stdin.md"
		data, err = readStdin(env.Stdin)
	} else {
		if !isMarkdown(src) {
			return fmt.Errorf("%w: import expects .md or .markdown, got %q", ErrInvalidExtension, src)
		}
		data, err = os.ReadFile(src) // #nosec G304 -- user-provided path
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrReadInput, err)
		}
	}
	if err != nil {
		return err
	}

	doc, err := newDocumentLoader(logger).load(ctx, name, data)
	if err != nil {
		return err
	}

	var out []byte
	if flags.compact {
		out, err = richtext.Marshal(doc.Root)
	} else {
		out, err = richtext.MarshalIndent(doc.Root, "", "  ")
	}
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if flags.output == "" {
		_, err = env.Stdout.Write(out)
		return err
	}
	if err := fileutil.WriteFileAtomic(flags.output, out, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", flags.output)
	}
	return nil
}
