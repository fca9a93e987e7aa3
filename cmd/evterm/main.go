// SPDX-License-Identifier: Unlicense OR MIT

// The evterm command runs an event loop in the terminal and shows the
// events it dispatches. Press q or Ctrl-C to quit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"gioui.org/evloop/app"
	termapp "gioui.org/evloop/app/term"
	"gioui.org/evloop/io/event"
	"gioui.org/evloop/io/key"
)

var (
	poll    = flag.Bool("poll", false, "deliver an event on every frame")
	logPath = flag.String("log", "", "write debug logs to `file`")
)

func main() {
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "evterm: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("standard input and output must be a terminal")
	}
	log, err := newLogger(*logPath)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()
	app.SetLogger(log)

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen: %w", err)
	}

	flow := app.ControlFlow{Mode: app.Wait}
	if *poll {
		flow.SetPoll()
	}
	t := app.NewTarget(termapp.NewPlatform(s), app.WithControlFlow(flow))
	c := termapp.NewCanvas(s)
	defer c.Close()
	id := t.GenerateID()
	if err := t.Register(c, id); err != nil {
		return err
	}

	v := &viewer{screen: s, target: t, done: make(chan struct{})}
	if err := t.Run(v.listen); err != nil {
		return err
	}
	c.Start()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-v.done:
	case sig := <-sigs:
		log.Debug("signal", zap.Stringer("signal", sig))
	}
	return nil
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// viewer draws the most recent events on the screen.
type viewer struct {
	screen tcell.Screen
	target *app.Target
	lines  []string
	seq    int

	doneOnce sync.Once
	done     chan struct{}
}

func (v *viewer) listen(e event.Event, cf *app.ControlFlow) {
	switch e := e.(type) {
	case event.RedrawRequested:
		v.draw()
		return
	case event.NewEvents:
		if e.Cause == event.Poll {
			// Too frequent to show.
			return
		}
	case event.WindowEvent:
		if k, ok := e.Event.(event.KeyboardInput); ok && quit(k.Input) {
			cf.SetExit()
			v.doneOnce.Do(func() { close(v.done) })
			return
		}
	case event.LoopDestroyed:
		v.doneOnce.Do(func() { close(v.done) })
	}
	v.seq++
	v.lines = append(v.lines, fmt.Sprintf("%5d %s %+v", v.seq, cf, e))
	if w, ok := e.(event.WindowEvent); ok {
		v.target.RequestRedraw(w.Window)
	} else {
		for _, id := range v.target.Windows() {
			v.target.RequestRedraw(id)
		}
	}
}

func quit(in key.Input) bool {
	if in.State != key.Press {
		return false
	}
	return in.Name == "Q" && in.Modifiers == 0 ||
		in.Name == "C" && in.Modifiers.Contain(key.ModCtrl)
}

func (v *viewer) draw() {
	w, h := v.screen.Size()
	if len(v.lines) > h {
		v.lines = v.lines[len(v.lines)-h:]
	}
	v.screen.Clear()
	for y, l := range v.lines {
		x := 0
		for _, r := range l {
			if x >= w {
				break
			}
			v.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x++
		}
	}
	v.screen.Show()
}
