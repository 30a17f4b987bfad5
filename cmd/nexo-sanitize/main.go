// Package main implements a command line front end for the Nexo sanitization pipeline
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nexo-textboard/nexo/pkg/config"
	"github.com/nexo-textboard/nexo/pkg/markdown"
)

var (
	// version contains the build version number, populated during linking.
	version = "undefined"

	// date contains the build date, populated during linking.
	date = "undefined"
)

var (
	help    = flag.Bool("help", false, "Displays help on flags and env variables.")
	logfile = flag.String("logfile", "stderr", "Write out log into the specified file.")
	logjson = flag.Bool("logjson", false, "Logs are written in JSON format.")
)

func main() {
	// Important top-level flags
	subcommands.ImportantFlag("logfile")

	// Setup standard helpers
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	// Setup my commands
	subcommands.Register(newPlainCmd(os.Stdin, os.Stdout), "sanitize")
	subcommands.Register(newRichCmd(os.Stdin, os.Stdout), "sanitize")
	subcommands.Register(newMarkdownCmd(os.Stdin, os.Stdout), "sanitize")
	subcommands.Register(&checkCmd{stdin: os.Stdin, stdout: os.Stdout}, "")

	flag.Parse()
	if *help {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "")
		config.Usage()
		return
	}
	// Process configuration.
	config.Version = version
	config.BuildDate = date
	conf, err := config.Process()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	// Logger setup.
	closeLog, err := openLog(conf.LogLevel, *logfile, *logjson)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Log error: %v\n", err)
		os.Exit(1)
	}
	log.Debug().Str("phase", "startup").Str("version", config.Version).
		Str("buildDate", config.BuildDate).Msg("Nexo sanitizer starting")
	renderer := markdown.New(markdown.Options{
		HardWraps: conf.Markdown.HardWraps,
		Linkify:   conf.Markdown.Linkify,
	})
	// Parse and execute
	status := subcommands.Execute(context.Background(), renderer)
	closeLog()
	os.Exit(int(status))
}

// logLevels are the accepted NEXO_LOGLEVEL values.
var logLevels = map[string]zerolog.Level{
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// openLog points the global logger at logfile, returns func to close it.
func openLog(level string, logfile string, json bool) (close func(), err error) {
	lvl, ok := logLevels[strings.ToLower(level)]
	if !ok {
		return nil, fmt.Errorf("log level %q not one of: debug, info, warn, error", level)
	}
	w, close, err := logWriter(logfile)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(lvl)
	w = zerolog.SyncWriter(w)
	if !json {
		// Only the standard streams may be terminals.
		plain := runtime.GOOS == "windows" || (logfile != "stderr" && logfile != "stdout")
		w = zerolog.ConsoleWriter{Out: w, NoColor: plain}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return close, nil
}

// logWriter opens the log destination: stderr, stdout or a file appended to.
func logWriter(name string) (io.Writer, func(), error) {
	switch name {
	case "stderr":
		return os.Stderr, func() {}, nil
	case "stdout":
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	bw := bufio.NewWriter(f)
	return bw, func() {
		_ = bw.Flush()
		_ = f.Close()
	}, nil
}

// rendererArg returns the markdown renderer passed to subcommands.Execute, or the default.
func rendererArg(args []interface{}) *markdown.Renderer {
	for _, a := range args {
		if r, ok := a.(*markdown.Renderer); ok {
			return r
		}
	}
	return markdown.Default()
}

// readInputs returns the contents of each named file, or of stdin when no files are named.
func readInputs(stdin io.Reader, names []string) ([][]byte, error) {
	if len(names) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return [][]byte{b}, nil
	}
	inputs := make([][]byte, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, b)
	}
	return inputs, nil
}

func fatal(msg string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	return subcommands.ExitFailure
}
