// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"gioui.org/evloop/app"
	"gioui.org/evloop/app/headless"
	"gioui.org/evloop/f32"
	"gioui.org/evloop/io/event"
	"gioui.org/evloop/io/key"
	"gioui.org/evloop/io/pointer"
	"gioui.org/evloop/unit"
)

// flowRequest is the payload of the user events sent by the control
// flow steps.
type flowRequest struct {
	mode  app.Mode
	after time.Duration
}

type replayer struct {
	log      *zap.Logger
	platform *headless.Platform
	target   *app.Target
	canvases []*headless.Canvas
	ids      []event.WindowID
	out      io.Writer
	seq      int
	err      error
}

// replay runs the trace and writes one record per dispatched event
// to out.
func replay(trace []byte, out io.Writer, log *zap.Logger) error {
	if !gjson.ValidBytes(trace) {
		return errors.New("trace is not valid JSON")
	}
	root := gjson.ParseBytes(trace)

	flow := app.ControlFlow{Mode: app.Wait}
	switch cf := root.Get("controlFlow").String(); cf {
	case "", "wait":
	case "poll":
		flow.SetPoll()
	default:
		return fmt.Errorf("invalid controlFlow %q", cf)
	}

	p := headless.NewPlatform()
	if s := root.Get("scale"); s.Exists() {
		p.SetScaleFactor(s.Float())
	}
	if s := root.Get("screen"); s.Exists() {
		p.SetScreenSize(unit.LogicalSize{
			Width:  s.Get("width").Float(),
			Height: s.Get("height").Float(),
		})
	}
	r := &replayer{
		log:      log,
		platform: p,
		target:   app.NewTarget(p, app.WithLogger(log), app.WithControlFlow(flow)),
		out:      out,
	}
	for _, w := range root.Get("windows").Array() {
		c := headless.NewCanvas(uint32(w.Get("width").Uint()), uint32(w.Get("height").Uint()))
		id := r.target.GenerateID()
		if err := r.target.Register(c, id); err != nil {
			return err
		}
		r.canvases = append(r.canvases, c)
		r.ids = append(r.ids, id)
	}
	if err := r.target.Run(r.listen); err != nil {
		return err
	}
	for i, s := range root.Get("steps").Array() {
		if err := r.step(s); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if r.err != nil {
			return r.err
		}
	}
	log.Debug("trace replayed", zap.Int("events", r.seq))
	return r.err
}

func (r *replayer) listen(e event.Event, cf *app.ControlFlow) {
	if r.err != nil {
		return
	}
	r.seq++
	rec, err := record(r.seq, e, *cf)
	if err == nil {
		_, err = fmt.Fprintln(r.out, rec)
	}
	if err != nil {
		r.err = err
		cf.SetExit()
		return
	}
	u, ok := e.(event.UserEvent)
	if !ok {
		return
	}
	req, ok := u.Payload.(flowRequest)
	if !ok {
		return
	}
	switch req.mode {
	case app.Poll:
		cf.SetPoll()
	case app.Wait:
		cf.SetWait()
	case app.WaitUntil:
		cf.SetWaitUntil(r.platform.Now().Add(req.after))
	case app.Exit:
		cf.SetExit()
	}
}

// send sends a user event. Events sent after the loop exited are
// dropped, like the notifications of the simulated windows.
func (r *replayer) send(v any) {
	if err := r.target.Proxy().SendEvent(v); err != nil {
		r.log.Debug("user event dropped", zap.Error(err))
	}
}

func (r *replayer) canvas(s gjson.Result) (*headless.Canvas, error) {
	i := int(s.Get("window").Int())
	if i < 0 || i >= len(r.canvases) {
		return nil, fmt.Errorf("no window %d", i)
	}
	return r.canvases[i], nil
}

func (r *replayer) step(s gjson.Result) error {
	op := s.Get("op").String()
	switch op {
	case "redraw":
		i := int(s.Get("window").Int())
		if i < 0 || i >= len(r.ids) {
			return fmt.Errorf("no window %d", i)
		}
		r.target.RequestRedraw(r.ids[i])
		return nil
	case "frame":
		r.platform.Frame()
		return nil
	case "advance":
		r.platform.Advance(duration(s.Get("ms")))
		return nil
	case "user":
		r.send(s.Get("payload").Value())
		return nil
	case "poll":
		r.send(flowRequest{mode: app.Poll})
		return nil
	case "wait":
		r.send(flowRequest{mode: app.Wait})
		return nil
	case "waitUntil":
		r.send(flowRequest{mode: app.WaitUntil, after: duration(s.Get("ms"))})
		return nil
	case "exit":
		r.send(flowRequest{mode: app.Exit})
		return nil
	}

	c, err := r.canvas(s)
	if err != nil {
		return err
	}
	ptr := pointer.ID(s.Get("pointer").Int())
	mods, err := parseModifiers(s.Get("mods"))
	if err != nil {
		return err
	}
	switch op {
	case "focus":
		c.Focus(s.Get("focused").Bool())
	case "key":
		name := key.Name(s.Get("name").String())
		sc := key.ScanCode(s.Get("scancode").Uint())
		switch st := s.Get("state").String(); st {
		case "down":
			c.KeyDown(sc, name, mods)
		case "up":
			c.KeyUp(sc, name, mods)
		default:
			return fmt.Errorf("invalid key state %q", st)
		}
	case "char":
		for _, ch := range s.Get("char").String() {
			c.Char(ch)
		}
	case "enter":
		c.PointerEnter(ptr)
	case "leave":
		c.PointerLeave(ptr)
	case "move":
		c.PointerMove(ptr, f32.Pt(float32(s.Get("x").Float()), float32(s.Get("y").Float())), mods)
	case "button":
		b, err := parseButton(s.Get("button").String())
		if err != nil {
			return err
		}
		switch st := s.Get("state").String(); st {
		case "down":
			c.ButtonDown(ptr, b, mods)
		case "up":
			c.ButtonUp(ptr, b, mods)
		default:
			return fmt.Errorf("invalid button state %q", st)
		}
	case "wheel":
		x, y := float32(s.Get("x").Float()), float32(s.Get("y").Float())
		var d pointer.ScrollDelta
		switch u := s.Get("unit").String(); u {
		case "", "lines":
			d = pointer.Lines(x, y)
		case "px":
			d = pointer.Pixels(x, y)
		default:
			return fmt.Errorf("invalid scroll unit %q", u)
		}
		c.Wheel(ptr, d, mods)
	case "resize":
		if sc := s.Get("scale"); sc.Exists() {
			r.platform.SetScaleFactor(sc.Float())
		}
		if s.Get("width").Exists() {
			r.platform.SetScreenSize(unit.LogicalSize{
				Width:  s.Get("width").Float(),
				Height: s.Get("height").Float(),
			})
		}
		c.Resize()
	case "fullscreen":
		c.SetFullscreen(s.Get("on").Bool())
	case "unload":
		c.Unload()
	default:
		return fmt.Errorf("unknown op %q", op)
	}
	return nil
}

func duration(ms gjson.Result) time.Duration {
	return time.Duration(ms.Float() * float64(time.Millisecond))
}

func parseModifiers(v gjson.Result) (key.Modifiers, error) {
	var mods key.Modifiers
	for _, m := range v.Array() {
		switch m.String() {
		case "ctrl":
			mods |= key.ModCtrl
		case "shift":
			mods |= key.ModShift
		case "alt":
			mods |= key.ModAlt
		case "super":
			mods |= key.ModSuper
		default:
			return 0, fmt.Errorf("invalid modifier %q", m.String())
		}
	}
	return mods, nil
}

func parseButton(name string) (pointer.Buttons, error) {
	switch name {
	case "", "primary":
		return pointer.ButtonPrimary, nil
	case "secondary":
		return pointer.ButtonSecondary, nil
	case "tertiary":
		return pointer.ButtonTertiary, nil
	case "back":
		return pointer.ButtonBack, nil
	case "forward":
		return pointer.ButtonForward, nil
	}
	return 0, fmt.Errorf("invalid button %q", name)
}
