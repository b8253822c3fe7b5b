package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
	"github.com/joho/godotenv"

	"github.com/taggate/tally.go/pkg/buttons"
	"github.com/taggate/tally.go/pkg/clock"
	"github.com/taggate/tally.go/pkg/console"
	"github.com/taggate/tally.go/pkg/display"
	fx "github.com/taggate/tally.go/pkg/framework"
	"github.com/taggate/tally.go/pkg/reader"
	"github.com/taggate/tally.go/pkg/store/devfile"
	"github.com/taggate/tally.go/pkg/tally"
	"github.com/taggate/tally.go/pkg/terminal"
)

func init() {
	_ = godotenv.Load()
	devfile.SetupFlags()
	reader.SetupFlags()
	buttons.SetupFlags()
	clock.SetupFlags()
	terminal.SetupFlags()
}

func main() {
	flag.Parse()

	disp := display.NewConsole()

	st, err := devfile.NewConfig().Open()
	if err != nil {
		glog.Fatalf("store open failed: %v", err)
	}
	defer st.Close()

	clk, err := clock.NewConfig().Probe()
	if err != nil {
		// halt permanently; records without a clock are worthless
		disp.Line(0, "Clock failure")
		disp.Line(1, "halted")
		glog.Fatalf("clock module absent: %v", err)
	}

	log := tally.Open(st)
	rd := reader.NewConfig().NewSerial()
	btns := buttons.NewConfig().NewSource()

	term := terminal.NewConfig().NewTerminal(log, rd, disp, clk)
	if id, err := machineid.ID(); err == nil {
		term.ID = id
	} else {
		glog.Warningf("machine id unavailable: %v", err)
		term.ID = "unknown"
	}
	glog.Infof("terminal %s up, logs=%d inside=%d", term.ID, log.Count(), log.Inside())

	disp.Line(0, "tally ready")
	disp.Line(1, fmt.Sprintf("In:%d Logs:%d", log.Inside(), log.Count()))

	loop := fx.NewLoop().Add(term, rd, btns)
	runner := fx.NewRunner().HandleSignals()
	runner.Go(loop, console.New(loop))
	if err := runner.Wait(); err != nil {
		glog.Exitf("terminal stopped: %v", err)
	}
}
