package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Zuo-Peng/clocktsv/internal/config"
	"github.com/Zuo-Peng/clocktsv/internal/convert"
	"github.com/Zuo-Peng/clocktsv/internal/output"
	"github.com/Zuo-Peng/clocktsv/internal/render"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type runOptions struct {
	input         string
	output        string
	configPath    string
	format        string
	strict        bool
	splitEveryDay bool
	verbose       bool
	quiet         bool
}

func run(ctx context.Context, opts runOptions, stderr io.Writer) error {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.WarnLevel)
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	log := logger.WithField("input", opts.input)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.splitEveryDay {
		cfg.SplitEveryDay = true
	}

	conv, err := convert.New(cfg, nil, log)
	if err != nil {
		return err
	}
	conv.Strict = opts.strict

	in, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := output.Create(opts.output, opts.format)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}

	stats, err := conv.Convert(ctx, in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		return err
	}

	log.Debugf("done: %s", stats)
	if !opts.quiet {
		fmt.Fprint(stderr, render.Summary(opts.output, stats, isTerminal(stderr)))
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
