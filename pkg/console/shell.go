// Package console provides the ishell backed operator console.
package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	fx "github.com/taggate/tally.go/pkg/framework"
	"github.com/taggate/tally.go/pkg/record"
	"github.com/taggate/tally.go/pkg/terminal"
)

// Shell wraps ishell around the control loop. Every command posts a
// request message into the loop and waits for the reply, so the loop
// stays the single owner of the log and the clock.
type Shell struct {
	Shell *ishell.Shell
	Ctl   fx.LoopControl
}

const shellKey = "$shell"

// replyTimeout bounds how long a command waits for the loop.
const replyTimeout = time.Second

// ErrNoReply indicates the loop did not answer in time.
var ErrNoReply = errors.New("terminal not responding")

var commands = []*ishell.Cmd{
	&ViewCmd,
	&ClearCmd,
	&StatusCmd,
	&TimeCmd,
}

// AddCmds is used by other command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new console over the loop.
func New(ctl fx.LoopControl) *Shell {
	s := &Shell{
		Shell: ishell.New(),
		Ctl:   ctl,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("tally> ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Post sends a request into the loop and schedules an iteration.
func (s *Shell) Post(msg fx.Message) {
	s.Ctl.PostMessage(msg)
	s.Ctl.TriggerNext()
}

// Name implements framework.Named.
func (s *Shell) Name() string {
	return "console"
}

// Run implements framework.Runnable.
func (s *Shell) Run(ctx context.Context) error {
	return fx.RunWithContextCancel(ctx, s.Shell.Stop, func() error {
		s.Shell.Run()
		return nil
	})
}

var (
	// ViewCmd dumps all records.
	ViewCmd = ishell.Cmd{
		Name: "v",
		Help: "dump all attendance records",
		Func: func(c *ishell.Context) {
			req := terminal.DumpReq{Reply: make(chan []record.Record, 1)}
			ShellFrom(c).Post(req)
			select {
			case recs := <-req.Reply:
				if len(recs) == 0 {
					c.Println("log empty")
					return
				}
				for i, rec := range recs {
					c.Printf("%2d  %-8s %-32s %-3s %s\n",
						i, rec.CardID, rec.Name, rec.Status, rec.Stamp)
				}
			case <-time.After(replyTimeout):
				c.Err(ErrNoReply)
			}
		},
	}

	// ClearCmd resets the log and the inside tally.
	ClearCmd = ishell.Cmd{
		Name: "c",
		Help: "clear the log and the inside tally",
		Func: func(c *ishell.Context) {
			c.Print("clear all records? [y/N] ")
			if strings.ToLower(strings.TrimSpace(c.ReadLine())) != "y" {
				c.Println("kept")
				return
			}
			req := terminal.ClearReq{Reply: make(chan struct{}, 1)}
			ShellFrom(c).Post(req)
			select {
			case <-req.Reply:
				c.Println("cleared")
			case <-time.After(replyTimeout):
				c.Err(ErrNoReply)
			}
		},
	}

	// StatusCmd prints counts and the current time.
	StatusCmd = ishell.Cmd{
		Name: "s",
		Help: "print counts and current time",
		Func: func(c *ishell.Context) {
			req := terminal.StatusReq{Reply: make(chan terminal.Status, 1)}
			ShellFrom(c).Post(req)
			select {
			case st := <-req.Reply:
				c.Printf("terminal %s\n", st.TerminalID)
				c.Printf("inside   %d\n", st.Inside)
				c.Printf("logs     %d\n", st.LogCount)
				c.Printf("time     %s\n", record.StampOf(st.Now))
			case <-time.After(replyTimeout):
				c.Err(ErrNoReply)
			}
		},
	}

	// TimeCmd sets the real-time clock interactively.
	TimeCmd = ishell.Cmd{
		Name: "t",
		Help: "set the clock (prompts for each field)",
		Func: func(c *ishell.Context) {
			fields := []struct {
				prompt   string
				min, max int
			}{
				{"year (2-digit)", 0, 99},
				{"month", 1, 12},
				{"day", 1, 31},
				{"hour", 0, 23},
				{"minute", 0, 59},
				{"second", 0, 59},
			}
			vals := make([]int, len(fields))
			for i, f := range fields {
				v, err := readNum(c, f.prompt, f.min, f.max)
				if err != nil {
					c.Err(err)
					return
				}
				vals[i] = v
			}
			to := time.Date(2000+vals[0], time.Month(vals[1]), vals[2],
				vals[3], vals[4], vals[5], 0, time.Local)
			req := terminal.SetTimeReq{To: to, Reply: make(chan error, 1)}
			ShellFrom(c).Post(req)
			select {
			case err := <-req.Reply:
				if err != nil {
					c.Err(err)
					return
				}
				c.Printf("clock set to %s\n", record.StampOf(to))
			case <-time.After(replyTimeout):
				c.Err(ErrNoReply)
			}
		},
	}
)

func readNum(c *ishell.Context, prompt string, min, max int) (int, error) {
	c.Printf("%s: ", prompt)
	v, err := strconv.Atoi(strings.TrimSpace(c.ReadLine()))
	if err != nil {
		return 0, fmt.Errorf("number expected")
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s out of range [%d..%d]", prompt, min, max)
	}
	return v, nil
}
