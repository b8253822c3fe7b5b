package terminal

import (
	"fmt"
	"time"

	"github.com/taggate/tally.go/pkg/buttons"
	fx "github.com/taggate/tally.go/pkg/framework"
	"github.com/taggate/tally.go/pkg/record"
)

type screen int

const (
	screenHome screen = iota
	screenBrowse
	screenConfirm
	screenResult
	screenInvalid
)

func (t *Terminal) toHome() {
	t.screen = screenHome
	t.browseAt = 0
}

func (t *Terminal) showResult(rec record.Record, at time.Time) {
	t.screen = screenResult
	t.result = rec
	t.holdUntil = at.Add(t.ResultHold)
	t.scroll.SetText(rec.Name)
}

func (t *Terminal) showInvalid(at time.Time) {
	t.screen = screenInvalid
	t.holdUntil = at.Add(t.ResultHold)
}

// press walks the menu. NEXT advances, SELECT enters or confirms.
func (t *Terminal) press(b buttons.Button, at time.Time) {
	switch t.screen {
	case screenHome:
		switch b {
		case buttons.Next:
			if t.Log.Count() > 0 {
				t.screen = screenBrowse
				t.browseAt = 0
				t.setBrowseScroll()
			}
		case buttons.Select:
			t.screen = screenConfirm
			t.holdUntil = at.Add(t.ConfirmTimeout)
		}
	case screenBrowse:
		switch b {
		case buttons.Next:
			t.browseAt++
			if t.browseAt >= t.Log.Count() {
				t.toHome()
				return
			}
			t.setBrowseScroll()
		case buttons.Select:
			t.toHome()
		}
	case screenConfirm:
		switch b {
		case buttons.Select:
			t.Log.Clear()
			t.toHome()
		case buttons.Next:
			t.toHome()
		}
	case screenResult, screenInvalid:
		// any press dismisses
		t.toHome()
	}
}

func (t *Terminal) setBrowseScroll() {
	if rec, err := t.Log.Get(t.browseAt); err == nil {
		t.scroll.SetText(fmt.Sprintf("%s %s", rec.Name, rec.Stamp))
	} else {
		t.scroll.SetText("<unreadable>")
	}
}

// render refreshes both display rows for the current screen.
func (t *Terminal) render(cc fx.ControlContext) error {
	switch t.screen {
	case screenHome:
		t.Display.Line(0, record.StampOf(cc.Time()).String())
		t.Display.Line(1, fmt.Sprintf("In:%d Logs:%d", t.Log.Inside(), t.Log.Count()))
	case screenBrowse:
		rec, err := t.Log.Get(t.browseAt)
		if err != nil {
			t.Display.Line(0, fmt.Sprintf("%d/%d <bad slot>", t.browseAt+1, t.Log.Count()))
			t.Display.Line(1, "")
			return nil
		}
		t.Display.Line(0, fmt.Sprintf("%d/%d %s %s", t.browseAt+1, t.Log.Count(), rec.CardID, rec.Status))
		t.Display.Line(1, t.scroll.Frame())
	case screenConfirm:
		t.Display.Line(0, "Clear log?")
		t.Display.Line(1, "SEL=yes NXT=no")
	case screenResult:
		t.Display.Line(0, fmt.Sprintf("%s %s", t.result.CardID, t.result.Status))
		t.Display.Line(1, t.scroll.Frame())
	case screenInvalid:
		t.Display.Line(0, "Invalid card")
		t.Display.Line(1, "")
	}
	return nil
}
