package main

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"

	"github.com/nexo-textboard/nexo/pkg/markdown"
	"github.com/nexo-textboard/nexo/pkg/markup"
	"github.com/nexo-textboard/nexo/pkg/sanitize"
)

// sanitizeCmd writes each input through one of the sanitization entry points.
type sanitizeCmd struct {
	name     string
	synopsis string
	clean    func(r *markdown.Renderer, payload []byte) string
	stdin    io.Reader
	stdout   io.Writer
	newline  bool
}

func newPlainCmd(stdin io.Reader, stdout io.Writer) *sanitizeCmd {
	return &sanitizeCmd{
		name:     "plain",
		synopsis: "remove all markup",
		clean: func(_ *markdown.Renderer, b []byte) string {
			return sanitize.Bytes(markup.PlainText, b)
		},
		stdin:  stdin,
		stdout: stdout,
	}
}

func newRichCmd(stdin io.Reader, stdout io.Writer) *sanitizeCmd {
	return &sanitizeCmd{
		name:     "rich",
		synopsis: "keep only b, i, u, br and safe links",
		clean: func(_ *markdown.Renderer, b []byte) string {
			return sanitize.Bytes(markup.RichText, b)
		},
		stdin:  stdin,
		stdout: stdout,
	}
}

func newMarkdownCmd(stdin io.Reader, stdout io.Writer) *sanitizeCmd {
	return &sanitizeCmd{
		name:     "markdown",
		synopsis: "sanitize as rich text, then render markdown",
		clean: func(r *markdown.Renderer, b []byte) string {
			return sanitize.MarkdownWith(r, string(b))
		},
		stdin:  stdin,
		stdout: stdout,
	}
}

func (s *sanitizeCmd) Name() string {
	return s.name
}

func (s *sanitizeCmd) Synopsis() string {
	return s.synopsis
}

func (s *sanitizeCmd) Usage() string {
	return s.name + ` [flags] [file ...]:
	` + s.synopsis + `
	reads stdin when no files are named, writes to stdout
`
}

func (s *sanitizeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&s.newline, "n", false, "write a newline after each sanitized input")
}

func (s *sanitizeCmd) Execute(
	_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	inputs, err := readInputs(s.stdin, f.Args())
	if err != nil {
		return fatal("Couldn't read input", err)
	}
	r := rendererArg(args)
	for _, in := range inputs {
		out := s.clean(r, in)
		if s.newline {
			out += "\n"
		}
		if _, err := io.WriteString(s.stdout, out); err != nil {
			return fatal("Couldn't write output", err)
		}
	}
	return subcommands.ExitSuccess
}
