package main

import (
	"fmt"
	"os"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
	term "github.com/pkg/term"

	evdev "github.com/gvalkov/golang-evdev"
)

// printDeviceList renders the evdev nodes matched by a keyword search as
// a table, the same discovery step the reference driver does by hand
// with a single fmt.Printf per candidate.
func printDeviceList(devices []evdev.InputDevice) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Path", "Name", "Vendor", "Product"})
	for _, dev := range devices {
		table.Append([]string{
			dev.Fn,
			dev.Name,
			fmt.Sprintf("%04x", dev.Inputid.Vendor),
			fmt.Sprintf("%04x", dev.Inputid.Product),
		})
	}
	table.Render()
}

// rawModeMonitor puts the controlling terminal into raw mode for the
// duration of a --watch session, so single keystrokes (q to quit) reach
// the tool without waiting on a newline.
type rawModeMonitor struct {
	tty *term.Term
}

func newRawModeMonitor() (*rawModeMonitor, error) {
	tty, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("open controlling tty: %w", err)
	}
	return &rawModeMonitor{tty: tty}, nil
}

// quitRequested polls for a single buffered keystroke and reports whether
// it was 'q'.
func (m *rawModeMonitor) quitRequested() bool {
	buf := make([]byte, 1)
	n, err := m.tty.Read(buf)
	return err == nil && n == 1 && buf[0] == 'q'
}

func (m *rawModeMonitor) Close() error {
	if err := m.tty.Restore(); err != nil {
		return err
	}
	return m.tty.Close()
}

// closeAll closes every closer, collecting every failure into a single
// aggregate error instead of stopping at the first one — shutdown should
// always attempt to release every resource it opened.
func closeAll(closers ...func() error) error {
	var result *multierror.Error
	for _, closeFn := range closers {
		if closeFn == nil {
			continue
		}
		if err := closeFn(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	return result
}
