// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.

// Command datasize converts, formats and computes data sizes from the command
// line.
package main

import (
	"context"
	"fmt"
	stdio "io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/optable/datasize/cli"
	dsio "github.com/optable/datasize/io"
	"github.com/optable/datasize/lifecycle"
)

type Globals struct {
	LogLevel  string `enum:"trace,debug,info,warn,error,disabled" default:"warn" env:"DATASIZE_LOG_LEVEL" help:"Log level (${enum})."`
	ConfigDir string `type:"path" default:"${config_dir}" env:"DATASIZE_CONFIG_DIR" help:"Directory holding the formatting presets."`

	cli.Profiling `embed:""`
}

type CLI struct {
	Globals `embed:""`

	Convert ConvertCmd `cmd:"" help:"Convert a number between units, flooring to a precision."`
	Format  FormatCmd  `cmd:"" help:"Format sizes for humans, from arguments or stdin."`
	Calc    CalcCmd    `cmd:"" help:"Compute with two sizes."`
	Preset  PresetCmd  `cmd:"" help:"Manage named formatting presets."`
}

// runtime is handed to every command.
type runtime struct {
	ctx     context.Context
	globals *Globals
	stdin   stdio.Reader
	out     dsio.FrameWriter
}

func (r *runtime) presets() (*cli.PresetDir, error) {
	return cli.NewPresetDir(r.globals.ConfigDir)
}

func newParser(c *CLI, stdout, stderr stdio.Writer, exit func(int)) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("datasize"),
		kong.Description("Convert, format and compute data sizes (1 KB = 1024 B)."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Vars{"config_dir": cli.DefaultPresetDir()},
	)
}

func newLogger(level string, w stdio.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger(), nil
}

// run parses args and executes the selected command. It returns the process
// exit code.
func run(ctx context.Context, args []string, stdin stdio.Reader, stdout, stderr stdio.Writer) int {
	var c CLI
	parser, err := newParser(&c, stdout, stderr, os.Exit)
	if err != nil {
		fmt.Fprintf(stderr, "datasize: error: %s\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "datasize: error: %s\n", err)
		return 2
	}

	logger, err := newLogger(c.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "datasize: error: %s\n", err)
		return 2
	}
	ctx = logger.WithContext(ctx)

	ctx, stop := lifecycle.WithSignalCancel(ctx)
	defer stop()

	stopProfiling := c.Profiling.Start(ctx)
	defer stopProfiling()

	out := dsio.NewBufferWriteCloser(stdout)
	rt := &runtime{
		ctx:     ctx,
		globals: &c.Globals,
		stdin:   stdin,
		out:     dsio.NewLineFrameWriter(out),
	}

	logger.Debug().Str("command", kctx.Command()).Msg("Running command")
	err = kctx.Run(rt)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		fmt.Fprintf(stderr, "datasize: error: %s\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
