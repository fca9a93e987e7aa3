// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"gioui.org/evloop/app"
)

var verbose = flag.Bool("v", false, "log event loop activity to standard error")

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
	}
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "evreplay: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func mainErr() error {
	if flag.NArg() > 1 {
		return errors.New("specify at most one trace file")
	}
	log, err := newLogger(*verbose)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()
	app.SetLogger(log)

	trace, err := readTrace(flag.Arg(0))
	if err != nil {
		return err
	}
	out := bufio.NewWriter(os.Stdout)
	if err := replay(trace, out, log); err != nil {
		out.Flush()
		return err
	}
	return out.Flush()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func readTrace(path string) ([]byte, error) {
	if path == "" || path == "-" {
		trace, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading trace: %w", err)
		}
		return trace, nil
	}
	trace, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return trace, nil
}
