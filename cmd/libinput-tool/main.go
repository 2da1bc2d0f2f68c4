// Command libinput-tool opens one evdev node, runs it through the engine,
// and replays the normalized result onto a uinput virtual device — the
// same find-device/grab/create-virtual-device/read-loop shape as the
// reference driver this engine replaces, generalized from one hardcoded
// touchpad to any device the engine knows how to classify.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	libinput "github.com/kwm81/libinput"
	"github.com/kwm81/libinput/internal/timer"
)

func main() {
	var (
		keyword  = flag.String("keyword", "", "substring to match against device names")
		path     = flag.String("device", "", "exact evdev node to open, e.g. /dev/input/event4")
		list     = flag.Bool("list", false, "list matching devices and exit")
		watch    = flag.Bool("watch", false, "print a live event log instead of driving a virtual device")
		confPath = flag.String("config", "", "YAML device configuration file")
	)
	flag.Parse()

	if *list {
		devices, err := listCandidates(*keyword)
		if err != nil {
			fmt.Fprintln(os.Stderr, "list devices:", err)
			os.Exit(1)
		}
		printDeviceList(devices)
		return
	}

	devicePath := *path
	if devicePath == "" {
		devices, err := listCandidates(*keyword)
		if err != nil || len(devices) == 0 {
			fmt.Fprintf(os.Stderr, "no device matching keyword %q found\n", *keyword)
			os.Exit(1)
		}
		devicePath = devices[0].Fn
	}

	if err := run(devicePath, *confPath, *watch); err != nil {
		fmt.Fprintln(os.Stderr, "libinput-tool:", err)
		os.Exit(1)
	}
}

func run(devicePath, confPath string, watch bool) error {
	source, err := openSource(devicePath)
	if err != nil {
		return err
	}
	defer source.Close()

	cfg, err := loadConfig(confPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	wheel := timer.New()
	caps, hasBtnLeft, absX, absY := source.capabilities()

	dev := libinput.NewDevice(source.identity(), caps, wheel, stderrLogger{})
	dev.AbsX, dev.AbsY = absX, absY
	if hasBtnLeft {
		dev.DeclareHasButton()
	}
	dispatch, tags := libinput.SelectDispatch(caps, false)
	dev.Dispatch = dispatch
	dispatch.TagDevice(dev, tags)
	dev.Configure(cfg)

	seat := libinput.NewSeat("default")
	id := seat.AddDevice(dev)
	defer seat.RemoveDevice(id, time.Duration(0))

	if watch {
		return watchLoop(source, dev, wheel)
	}
	return driveLoop(source, dev, wheel, absX, absY)
}

// driveLoop feeds the engine from the evdev source and replays every
// emitted callback onto a uinput virtual device until interrupted.
func driveLoop(source *evdevSource, dev *libinput.Device, wheel *timer.Wheel, absX, absY libinput.AxisInfo) error {
	sink, err := newUinputSink(dev.Ident.Name, absX, absY)
	if err != nil {
		return err
	}
	dev.Sink = sink

	coll, err := newOSCollaborators()
	if err != nil {
		sink.Close()
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	stop := false
	coll.AddFD(source.Fd(), func() {
		events, err := source.Read()
		if err != nil {
			stop = true
			return
		}
		for _, ev := range events {
			dev.Process(ev)
		}
	}, nil)

	for !stop {
		select {
		case <-sigCh:
			stop = true
		default:
		}
		if stop {
			break
		}
		if err := coll.wait(50); err != nil {
			return closeAll(sink.Close, coll.Close)
		}
		wheel.Advance(nowMonotonic())
	}
	return closeAll(sink.Close, coll.Close)
}

// watchLoop prints every raw event instead of driving a virtual device,
// for inspecting a device's wire protocol before writing a config file.
func watchLoop(source *evdevSource, dev *libinput.Device, wheel *timer.Wheel) error {
	mon, err := newRawModeMonitor()
	if err != nil {
		return err
	}
	defer mon.Close()

	for {
		events, err := source.Read()
		if err != nil {
			return nil
		}
		for _, ev := range events {
			fmt.Printf("type=%d code=%d value=%d\n", ev.Type, ev.Code, ev.Value)
			dev.Process(ev)
		}
		if mon.quitRequested() {
			return nil
		}
	}
}

func nowMonotonic() time.Time {
	var ts unix.Timespec
	unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	return time.Unix(ts.Sec, ts.Nsec)
}

// stderrLogger is the libinput-tool default Logger, printing every
// message to stderr with its severity prefix.
type stderrLogger struct{}

func (stderrLogger) Bug(format string, args ...any)   { fmt.Fprintf(os.Stderr, "bug: "+format+"\n", args...) }
func (stderrLogger) Info(format string, args ...any)  { fmt.Fprintf(os.Stderr, "info: "+format+"\n", args...) }
func (stderrLogger) Debug(format string, args ...any) { fmt.Fprintf(os.Stderr, "debug: "+format+"\n", args...) }
