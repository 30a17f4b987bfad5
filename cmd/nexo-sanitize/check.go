package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"

	"github.com/nexo-textboard/nexo/pkg/markup"
	"github.com/nexo-textboard/nexo/pkg/sanitize"
)

// Allow subcommands to accept a sanitization mode as a flag
type modeFlag struct {
	markup.Mode
}

func (m *modeFlag) Set(name string) error {
	mode, err := markup.ParseMode(name)
	if err != nil {
		return err
	}
	m.Mode = mode
	return nil
}

// modeFlag must implement flag.Value
var _ flag.Value = &modeFlag{}

type checkCmd struct {
	mode   modeFlag
	stdin  io.Reader
	stdout io.Writer
}

func (*checkCmd) Name() string {
	return "check"
}

func (*checkCmd) Synopsis() string {
	return "report whether text is already sanitized"
}

func (*checkCmd) Usage() string {
	return `check [flags] [text ...]:
	checks the joined arguments, or stdin when none are given
	exit status will be 1 if sanitizing would change the text, otherwise 0
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.mode, "mode", "sanitization mode: plain or rich")
}

func (c *checkCmd) Execute(
	_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var text string
	if f.NArg() > 0 {
		text = strings.Join(f.Args(), " ")
	} else {
		b, err := io.ReadAll(c.stdin)
		if err != nil {
			return fatal("Couldn't read input", err)
		}
		text = string(b)
	}
	clean := sanitize.ForMode(c.mode.Mode, text)
	if clean != text {
		fmt.Fprintf(c.stdout, "not %v: %q\n", c.mode.Mode, clean)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.stdout, "%v: ok\n", c.mode.Mode)
	return subcommands.ExitSuccess
}
