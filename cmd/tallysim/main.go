package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"
	"github.com/joho/godotenv"

	"github.com/taggate/tally.go/pkg/buttons"
	"github.com/taggate/tally.go/pkg/clock"
	"github.com/taggate/tally.go/pkg/console"
	"github.com/taggate/tally.go/pkg/display"
	fx "github.com/taggate/tally.go/pkg/framework"
	"github.com/taggate/tally.go/pkg/reader"
	"github.com/taggate/tally.go/pkg/store/memstore"
	"github.com/taggate/tally.go/pkg/tally"
	"github.com/taggate/tally.go/pkg/terminal"
)

func init() {
	_ = godotenv.Load()
	terminal.SetupFlags()
}

func main() {
	flag.Parse()

	log := tally.Open(memstore.New())
	rd := &reader.Scripted{}
	disp := display.NewConsole()

	term := terminal.NewConfig().NewTerminal(log, rd, disp, &clock.System{})
	term.ID = "sim"

	loop := fx.NewLoop().Add(term)
	sh := console.New(loop)
	sh.Shell.AddCmd(&ishell.Cmd{
		Name: "scan",
		Help: "ID [NAME]  present a card to the simulated reader",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("card id expected"))
				return
			}
			card := reader.Card{ID: c.Args[0], Name: strings.Join(c.Args[1:], " ")}
			rd.Present(card)
			sh.Ctl.TriggerNext()
		},
	})
	sh.Shell.AddCmd(&ishell.Cmd{
		Name: "next",
		Help: "press the NEXT button",
		Func: func(c *ishell.Context) {
			sh.Post(buttons.PressMsg{Button: buttons.Next})
		},
	})
	sh.Shell.AddCmd(&ishell.Cmd{
		Name: "sel",
		Help: "press the SELECT button",
		Func: func(c *ishell.Context) {
			sh.Post(buttons.PressMsg{Button: buttons.Select})
		},
	})

	runner := fx.NewRunner().HandleSignals()
	runner.Go(loop, sh)
	if err := runner.Wait(); err != nil {
		glog.Exitf("terminal stopped: %v", err)
	}
}
