// Package terminal implements the attendance terminal's control
// logic: scan processing, button navigation and display rendering.
package terminal

import (
	"time"

	"github.com/golang/glog"

	"github.com/taggate/tally.go/pkg/buttons"
	"github.com/taggate/tally.go/pkg/clock"
	"github.com/taggate/tally.go/pkg/display"
	fx "github.com/taggate/tally.go/pkg/framework"
	"github.com/taggate/tally.go/pkg/reader"
	"github.com/taggate/tally.go/pkg/record"
	"github.com/taggate/tally.go/pkg/tally"
)

// Terminal is the session object owning all mutable terminal state.
// It runs entirely on the control loop: the reader is polled in the
// Sense phase, buttons and console requests are handled in Control,
// and the display is refreshed in Render.
type Terminal struct {
	Log     *tally.Log
	Reader  reader.Reader
	Display display.Display
	Clock   clock.Clock

	// ID identifies this terminal, reported by the status command.
	ID string

	ResultHold     time.Duration
	ConfirmTimeout time.Duration

	screen      screen
	browseAt    int
	holdUntil   time.Time
	result      record.Record
	invalidCard bool
	scroll      display.Scroller
}

// AddToLoop implements framework.LoopAdder.
func (t *Terminal) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PhaseSense, fx.ControlFunc(t.sense))
	loop.AddController(fx.PhaseControl, fx.ControlFunc(t.control))
	loop.AddController(fx.PhaseRender, fx.ControlFunc(t.render))
}

// sense polls the card reader and processes at most one scan.
func (t *Terminal) sense(cc fx.ControlContext) error {
	card, ok := t.Reader.Poll()
	if !ok {
		return nil
	}
	if !card.Valid() {
		glog.Errorf("uninitialized card rejected (id=%q)", card.ID)
		t.showInvalid(cc.Time())
		return nil
	}
	rec := t.processScan(card, cc.Time())
	t.showResult(rec, cc.Time())
	glog.Infof("card %s (%s) -> %v, inside=%d, logs=%d",
		rec.CardID, rec.Name, rec.Status, t.Log.Inside(), t.Log.Count())
	return nil
}

// processScan is the scan entry point: toggle the holder's status,
// append the stamped record and move the inside tally.
func (t *Terminal) processScan(card reader.Card, at time.Time) record.Record {
	status := t.Log.LastStatus(card.ID).Toggle()
	rec := record.Record{
		CardID: card.ID,
		Name:   card.Name,
		Status: status,
		Stamp:  record.StampOf(at),
	}
	t.Log.Append(rec)
	t.Log.AdjustInside(status)
	return rec
}

// control consumes button presses and console requests.
func (t *Terminal) control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		switch msg := mctx.CurrentMessage().(type) {
		case buttons.PressMsg:
			mctx.MessageTaken()
			t.press(msg.Button, cc.Time())
		case DumpReq:
			mctx.MessageTaken()
			msg.Reply <- t.dump()
		case ClearReq:
			mctx.MessageTaken()
			t.Log.Clear()
			t.toHome()
			msg.Reply <- struct{}{}
		case StatusReq:
			mctx.MessageTaken()
			msg.Reply <- Status{
				TerminalID: t.ID,
				LogCount:   t.Log.Count(),
				Inside:     t.Log.Inside(),
				Now:        t.Clock.Now(),
			}
		case SetTimeReq:
			mctx.MessageTaken()
			msg.Reply <- t.Clock.Set(msg.To)
		}
	}))

	// scan results and the confirm prompt expire on wall clock,
	// polled here rather than with timers
	switch t.screen {
	case screenResult, screenInvalid, screenConfirm:
		if cc.Time().After(t.holdUntil) {
			t.toHome()
		}
	}
	return nil
}

func (t *Terminal) dump() []record.Record {
	recs := make([]record.Record, 0, t.Log.Count())
	for i := 0; i < t.Log.Count(); i++ {
		rec, err := t.Log.Get(i)
		if err != nil {
			glog.Errorf("slot %d unparseable, skipped", i)
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}
