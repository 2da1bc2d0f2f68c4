package main

import (
	"fmt"
	"strings"
	"time"

	evdev "github.com/gvalkov/golang-evdev"

	libinput "github.com/kwm81/libinput"
)

// evdevSource wraps a single opened evdev node and converts its event
// stream into the engine's RawEvent shape, grabbing the node exclusively
// so the host compositor stops seeing the raw device once we own it.
type evdevSource struct {
	path string
	dev  *evdev.InputDevice
}

// openSource opens and grabs path, mirroring the way the reference driver
// this tool is built around acquires its touchpad node before creating a
// virtual one to replace it.
func openSource(path string) (*evdevSource, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, &libinput.DeviceOpenError{Path: path, Err: err}
	}
	if err := dev.Grab(); err != nil {
		dev.File.Close()
		return nil, &libinput.DeviceOpenError{Path: path, Err: fmt.Errorf("grab: %w", err)}
	}
	return &evdevSource{path: path, dev: dev}, nil
}

// Close releases the grab and closes the node.
func (s *evdevSource) Close() error {
	s.dev.Release()
	return s.dev.File.Close()
}

// Fd is the file descriptor to register with the event loop.
func (s *evdevSource) Fd() int {
	return int(s.dev.File.Fd())
}

// Read blocks for the next batch of kernel events and converts each to a
// RawEvent. A SYN_REPORT-terminated batch from evdev.Read maps one to one
// onto the engine's own per-report accumulation, since both follow the
// kernel's own framing.
func (s *evdevSource) Read() ([]libinput.RawEvent, error) {
	raw, err := s.dev.Read()
	if err != nil {
		return nil, &libinput.FatalReadError{Err: err}
	}
	out := make([]libinput.RawEvent, 0, len(raw))
	for _, ev := range raw {
		out = append(out, libinput.RawEvent{
			Type:      ev.Type,
			Code:      ev.Code,
			Value:     ev.Value,
			Timestamp: time.Duration(ev.Time.Sec)*time.Second + time.Duration(ev.Time.Usec)*time.Microsecond,
		})
	}
	return out, nil
}

// identity converts the evdev device's reported identity into the
// engine's Identity struct.
func (s *evdevSource) identity() libinput.Identity {
	id := s.dev.Inputid
	return libinput.Identity{
		Name:    s.dev.Name,
		Vendor:  id.Vendor,
		Product: id.Product,
		Bustype: id.Bustype,
	}
}

// capabilities inspects the evdev capability map to derive the bitmask
// and axis calibration info NewDevice/SetCalibration need. CapToolFinger
// comes from BTN_TOOL_FINGER/DOUBLETAP/TRIPLETAP and CapTouch from either
// an ABS_X or an ABS_MT_POSITION_X axis; the axis bounds are read from
// ABS_MT_POSITION_X/Y only. It does not report whether the device uses
// the multitouch slot protocol, so Device.MTCapable stays unset.
func (s *evdevSource) capabilities() (caps libinput.Capability, hasBtnLeft bool, absX, absY libinput.AxisInfo) {
	evCaps := s.dev.Capabilities
	for evType, codes := range evCaps {
		switch evType.Code {
		case evdev.EV_KEY:
			for _, c := range codes {
				switch uint16(c.Code) {
				case libinput.BtnLeft:
					hasBtnLeft = true
					caps |= libinput.CapPointer
				case libinput.BtnToolFinger, libinput.BtnToolDoubleTap, libinput.BtnToolTripleTap:
					caps |= libinput.CapToolFinger
				case libinput.BtnToolPen:
					caps |= libinput.CapToolPen
				default:
					if c.Code < 0x100 {
						caps |= libinput.CapKeyboard
					}
				}
			}
		case evdev.EV_REL:
			caps |= libinput.CapPointer
		case evdev.EV_ABS:
			for _, c := range codes {
				if uint16(c.Code) == libinput.AbsMTPositionX || uint16(c.Code) == libinput.AbsX {
					caps |= libinput.CapTouch
				}
			}
		}
	}
	if absInfo, ok := s.dev.AbsInfo(); ok {
		if info, ok := absInfo[evdev.ABS_MT_POSITION_X]; ok {
			absX = libinput.AxisInfo{Min: info.Minimum, Max: info.Maximum, Resolution: info.Resolution}
		}
		if info, ok := absInfo[evdev.ABS_MT_POSITION_Y]; ok {
			absY = libinput.AxisInfo{Min: info.Minimum, Max: info.Maximum, Resolution: info.Resolution}
		}
	}
	return caps, hasBtnLeft, absX, absY
}

// listCandidates returns the path of every evdev node whose name contains
// keyword, case-insensitively — the same substring match the reference
// driver uses to find its touchpad without hardcoding an event number.
func listCandidates(keyword string) ([]evdev.InputDevice, error) {
	devices, err := evdev.ListInputDevices()
	if err != nil {
		return nil, err
	}
	if keyword == "" {
		return devices, nil
	}
	var matched []evdev.InputDevice
	for _, dev := range devices {
		if strings.Contains(strings.ToLower(dev.Name), strings.ToLower(keyword)) {
			matched = append(matched, *dev)
		}
	}
	return matched, nil
}

