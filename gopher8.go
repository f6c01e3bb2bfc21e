// This file is part of Gopher8.
//
// Gopher8 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher8 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher8.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/hexbus/gopher8/debugger"
	"github.com/hexbus/gopher8/debugger/terminal"
	"github.com/hexbus/gopher8/debugger/terminal/colorterm"
	"github.com/hexbus/gopher8/debugger/terminal/plainterm"
	"github.com/hexbus/gopher8/disassembly"
	"github.com/hexbus/gopher8/gui"
	"github.com/hexbus/gopher8/gui/sdlplay"
	"github.com/hexbus/gopher8/hardware/screen"
	"github.com/hexbus/gopher8/logger"
	"github.com/hexbus/gopher8/modalflag"
	"github.com/hexbus/gopher8/paths"
	"github.com/hexbus/gopher8/performance"
	"github.com/hexbus/gopher8/playmode"
	"github.com/hexbus/gopher8/regression"
	"github.com/hexbus/gopher8/romloader"
	"github.com/hexbus/gopher8/statsview"
	"github.com/hexbus/gopher8/wavwriter"
)

const defaultInitScript = "debuggerInit"

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative handler is
	// more appropriate. for example, the playmode and debugger packages
	// provide mode specific handlers.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
//
// Note that there is no Create() function because we need the freedom to
// create the GUI how we want. Instead the creator is a channel which accepts
// a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all).
	// It MUST ONLY be called as part of a larger loop from the main thread.
	// It should service all gui events that are not safe to do in
	// sub-threads.
	Service()
}

// communication between the main() function and the launch() function. this
// is required because many gui solutions (notably SDL) require window event
// handling (including creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with a reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through the
	// mainSync instance
	go launch(sync)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// gui is a variable of type interface. a nil value returned
				// from the creator() function does not cause the interface
				// value itself to equal nil, so we make sure of it here
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		default:
			// service the gui between state requests
			if gui != nil {
				gui.Service()
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PLAY", "DEBUG", "DISASM", "PERFORMANCE", "REGRESS")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		fallthrough

	case "PLAY":
		err = play(md, sync)

	case "DEBUG":
		err = debug(md, sync)

	case "DISASM":
		err = disasm(md)

	case "PERFORMANCE":
		err = perform(md, sync)

	case "REGRESS":
		err = regress(md, sync)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

func play(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	scaling := md.AddFloat64("scale", 0.0, "display scaling")
	fpsCap := md.AddBool("fpscap", true, "cap fps to the CHIP-8 frame rate")
	wav := md.AddString("wav", "", "record audio to wav file")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("CHIP-8 ROM required for %s mode", md)
	case 1:
		ld := romloader.NewLoader(md.GetArg(0))

		scr, err := screen.NewScreen()
		if err != nil {
			return err
		}
		defer scr.End()

		// set fps cap
		scr.SetFPSCap(*fpsCap)

		// add wavwriter mixer if wav argument has been specified
		if *wav != "" {
			if _, err := wavwriter.NewWavWriter(scr, *wav); err != nil {
				return err
			}
		}

		// create gui
		sync.creator <- func() (GuiCreator, error) {
			return sdlplay.NewSdlPlay(scr)
		}

		// wait for creator result
		var g gui.GUI
		select {
		case cr := <-sync.creation:
			g = cr.(gui.GUI)
		case err := <-sync.creationError:
			return err
		}

		// turn off fallback ctrl-c handling. this allows the playmode to
		// end the emulation gracefully
		sync.state <- stateRequest{req: reqNoIntSig}

		// set scaling value
		if *scaling > 0.0 {
			err = g.ReqFeature(gui.ReqSetScale, float32(*scaling))
			if err != nil {
				return err
			}
		}

		err = playmode.Play(scr, g, ld)
		if err != nil {
			return err
		}

		// save preferences before finishing successfully
		err = g.ReqFeature(gui.ReqSavePrefs)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func debug(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	termType := md.AddString("term", "COLOR", "terminal type to use in debug mode: COLOR, PLAIN")
	initScript := md.AddString("initscript", paths.ResourcePath(defaultInitScript), "script to run on debugger start")
	profile := md.AddBool("profile", false, "run debugger through cpu profiler")
	scaling := md.AddFloat64("scale", 0.0, "display scaling")
	stats := md.AddBool("stats", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("stats server not available in this build")
		}
		statsview.Launch(md.Output)
	}

	scr, err := screen.NewScreen()
	if err != nil {
		return err
	}
	defer scr.End()

	// create gui
	sync.creator <- func() (GuiCreator, error) {
		return sdlplay.NewSdlPlay(scr)
	}

	// wait for creator result
	var g gui.GUI
	select {
	case cr := <-sync.creation:
		g = cr.(gui.GUI)
	case err := <-sync.creationError:
		return err
	}

	var term terminal.Terminal

	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to plain\n", *termType)
		fallthrough
	case "PLAIN":
		term = &plainterm.PlainTerminal{}
	case "COLOR":
		term = &colorterm.ColorTerminal{}
	}

	// turn off fallback ctrl-c handling. this allows the debugger to use
	// ctrl-c events to interrupt execution of the emulation without quitting
	// the debugger itself
	sync.state <- stateRequest{req: reqNoIntSig}

	// set scaling value
	if *scaling > 0.0 {
		err = g.ReqFeature(gui.ReqSetScale, float32(*scaling))
		if err != nil {
			return err
		}
	}

	dbg, err := debugger.NewDebugger(scr, g, term)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("CHIP-8 ROM required for %s mode", md)

	case 1:
		// set up a running function
		dbgRun := func() error {
			return dbg.Start(*initScript, romloader.NewLoader(md.GetArg(0)))
		}

		// if profile generation has been requested then pass the dbgRun()
		// function prepared above through the ProfileCPU() command
		if *profile {
			if err := performance.ProfileCPU("debug.cpu.profile", dbgRun); err != nil {
				return err
			}
			if err := performance.ProfileMem("debug.mem.profile"); err != nil {
				return err
			}
		} else {
			if err := dbgRun(); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	// save preferences before finishing successfully
	return g.ReqFeature(gui.ReqSavePrefs)
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("CHIP-8 ROM required for %s mode", md)
	case 1:
		attr := disassembly.WriteAttr{
			ByteCode: *bytecode,
		}

		dsm, err := disassembly.FromLoader(romloader.NewLoader(md.GetArg(0)))
		if err != nil {
			return err
		}

		if err := dsm.Write(md.Output, attr); err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func perform(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	display := md.AddBool("display", false, "display emulation output")
	scaling := md.AddFloat64("scale", 0.0, "display scaling (only valid if -display=true)")
	fpsCap := md.AddBool("fpscap", true, "cap fps to the CHIP-8 frame rate (only valid if -display=true)")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddBool("profile", false, "produce cpu and memory profiling reports")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("CHIP-8 ROM required for %s mode", md)
	case 1:
		ld := romloader.NewLoader(md.GetArg(0))

		scr, err := screen.NewScreen()
		if err != nil {
			return err
		}
		defer scr.End()

		scr.SetFPSCap(*fpsCap)

		if *display {
			// create gui
			sync.creator <- func() (GuiCreator, error) {
				return sdlplay.NewSdlPlay(scr)
			}

			// wait for creator result
			var g gui.GUI
			select {
			case cr := <-sync.creation:
				g = cr.(gui.GUI)
			case err := <-sync.creationError:
				return err
			}

			if err := g.ReqFeature(gui.ReqSetVisibility, true); err != nil {
				return err
			}

			// set scaling value
			if *scaling > 0.0 {
				if err := g.ReqFeature(gui.ReqSetScale, float32(*scaling)); err != nil {
					return err
				}
			}
		}

		err = performance.Check(md.Output, *profile, scr, ld, *duration)
		if err != nil {
			return err
		}

		// deliberately not saving gui preferences because we don't want any
		// changes to the performance window impacting the play mode

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

// yesReader always returns 'y'. used to automatically confirm database
// deletions when the -yes flag is specified.
type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

func regress(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		// turn off default sigint handling
		sync.state <- stateRequest{req: reqNoIntSig}

		err = regression.RegressRun(md.Output, *verbose, md.RemainingArgs())
		if err != nil {
			return err
		}

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			if err := regression.RegressList(md.Output); err != nil {
				return err
			}
		default:
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

	case "DELETE":
		md.NewMode()

		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			// use stdin for confirmation unless "yes" flag has been sent
			var confirmation io.Reader
			if *answerYes {
				confirmation = &yesReader{}
			} else {
				confirmation = os.Stdin
			}

			if err := regression.RegressDelete(md.Output, confirmation, md.GetArg(0)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("only one entry can be deleted at a time")
		}

	case "ADD":
		return regressAdd(md)
	}

	return nil
}

func regressAdd(md *modalflag.Modes) error {
	md.NewMode()

	notes := md.AddString("notes", "", "additional annotation for the database")
	numFrames := md.AddInt("frames", 10, "number of frames to run")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo. asking for log output suppresses the regression
	// progress meter
	if *log {
		logger.SetEcho(os.Stdout)
		md.Output = &nopWriter{}
	} else {
		logger.SetEcho(nil)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("CHIP-8 ROM required for %s mode", md)
	case 1:
		reg := &regression.VideoRegression{
			ROM:       md.GetArg(0),
			NumFrames: *numFrames,
			Notes:     *notes,
		}

		if err := regression.RegressAdd(md.Output, reg); err != nil {
			// using carriage return (without newline) at beginning of error
			// message because we want to overwrite the last output from
			// RegressAdd()
			return fmt.Errorf("\rerror adding regression test: %v", err)
		}
	default:
		return fmt.Errorf("regression tests can only be added one at a time")
	}

	return nil
}

// nopWriter is an empty writer.
type nopWriter struct{}

func (*nopWriter) Write(p []byte) (n int, err error) {
	return 0, nil
}
