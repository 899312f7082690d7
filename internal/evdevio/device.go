// Package evdevio is the collaborator layer around the reactor core: it
// opens /dev/input/event* nodes, decodes raw input_event structs, filters
// key-repeat noise, reads a device's initial state via ioctl, and matches
// device name/phys/path patterns the way the reference evev.c CLI does.
// None of this is exercised by the core's truth-table semantics - it only
// produces the (Typecode, value, timestamp) triples that feed
// evreactor.Context.InputEvent.
package evdevio

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Event-type constants restated from internal/codetable rather than
// imported (importing codetable here would create no cycle, but the
// handful of constants this file needs are cheaper to restate than to
// import).
const (
	EvKey = 0x01
)

// inputEventSize is sizeof(struct input_event) on a 64-bit Linux kernel:
// a 16-byte struct timeval, followed by u16 type, u16 code, s32 value.
const inputEventSize = 24

// RawEvent is a decoded struct input_event.
type RawEvent struct {
	Sec, Usec int64
	Type      uint16
	Code      uint16
	Value     int32
}

// IsKeyRepeat reports whether ev is a key-autorepeat notification
// (EV_KEY with value 2), which the reference CLI always discards before
// it ever reaches the reactor core.
func IsKeyRepeat(ev RawEvent) bool {
	return ev.Type == EvKey && ev.Value == 2
}

func decodeEvent(buf []byte) RawEvent {
	return RawEvent{
		Sec:   int64(binary.LittleEndian.Uint64(buf[0:8])),
		Usec:  int64(binary.LittleEndian.Uint64(buf[8:16])),
		Type:  binary.LittleEndian.Uint16(buf[16:18]),
		Code:  binary.LittleEndian.Uint16(buf[18:20]),
		Value: int32(binary.LittleEndian.Uint32(buf[20:24])),
	}
}

// Device is an open evdev node.
type Device struct {
	Path string
	Name string
	Phys string
	FD   int

	buf [inputEventSize * 64]byte
}

// Open opens path read-only and reads its name/phys strings via ioctl.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("evdevio: open %s: %w", path, err)
	}

	d := &Device{Path: path, FD: fd}

	name, err := ioctlGetString(fd, evIOCGName(128))
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("evdevio: EVIOCGNAME %s: %w", path, err)
	}
	d.Name = name

	phys, err := ioctlGetString(fd, evIOCGPhys(128))
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("evdevio: EVIOCGPHYS %s: %w", path, err)
	}
	d.Phys = phys

	return d, nil
}

// Close releases the device's file descriptor.
func (d *Device) Close() error {
	return unix.Close(d.FD)
}

// ReadEvents performs a single read(2) and decodes every whole
// input_event it returned. The kernel always delivers evdev reads in
// multiples of sizeof(struct input_event), so a short remainder is never
// expected; ReadEvents returning 0 events with a nil error means EAGAIN-like
// "nothing ready right now" on a non-blocking fd.
func (d *Device) ReadEvents() ([]RawEvent, error) {
	n, err := unix.Read(d.FD, d.buf[:])
	if err != nil {
		if err == unix.EAGAIN {
			return nil, nil
		}
		return nil, err
	}
	count := n / inputEventSize
	events := make([]RawEvent, 0, count)
	for i := 0; i < count; i++ {
		off := i * inputEventSize
		events = append(events, decodeEvent(d.buf[off:off+inputEventSize]))
	}
	return events, nil
}

// MatchesPattern reports whether pattern matches this device, using the
// same name=/phys=/dev=/bare-glob convention the reference CLI's
// open_evdev accepts. A bare pattern (no prefix) matches against the
// device's path, mirroring the reference's fallback to evdev (the path).
func (d *Device) MatchesPattern(pattern string) bool {
	var text string
	switch {
	case strings.HasPrefix(pattern, "phys="):
		pattern = pattern[len("phys="):]
		text = d.Phys
	case strings.HasPrefix(pattern, "name="):
		pattern = pattern[len("name="):]
		text = d.Name
	case strings.HasPrefix(pattern, "dev="):
		pattern = pattern[len("dev="):]
		text = d.Path
	default:
		text = d.Path
	}
	ok, err := filepath.Match(pattern, text)
	return err == nil && ok
}

// MatchesAny reports whether d matches any of patterns, or true if
// patterns is empty (no filter means every device matches).
func (d *Device) MatchesAny(patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pat := range patterns {
		if d.MatchesPattern(pat) {
			return true
		}
	}
	return false
}
