package evdevio

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// The ioctl number macros below replicate linux/input.h's EVIOCG* family
// via the generic _IOC encoding (include/uapi/asm-generic/ioctl.h): a
// direction, an ASCII "type" byte ('E' for evdev), a command number, and a
// payload size packed into a single request word. golang.org/x/sys/unix
// doesn't expose these directly (they're kernel-header constants, not
// syscall wrappers), so this package computes them the same way the
// headers do.
const (
	iocRead      = 2
	iocNRBits    = 8
	iocTypeBits  = 8
	iocSizeBits  = 14
	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	evdevIOCType = 'E'
)

func ioc(dir, nr, size uintptr) uintptr {
	return dir<<iocDirShift | evdevIOCType<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

func evIOCGName(length int) uintptr { return ioc(iocRead, 0x06, uintptr(length)) }
func evIOCGPhys(length int) uintptr { return ioc(iocRead, 0x07, uintptr(length)) }
func evIOCGBit(evType, length int) uintptr {
	return ioc(iocRead, uintptr(0x20+evType), uintptr(length))
}
func evIOCGKey(length int) uintptr  { return ioc(iocRead, 0x18, uintptr(length)) }
func evIOCGLED(length int) uintptr  { return ioc(iocRead, 0x19, uintptr(length)) }
func evIOCGSND(length int) uintptr  { return ioc(iocRead, 0x1a, uintptr(length)) }
func evIOCGSW(length int) uintptr   { return ioc(iocRead, 0x1b, uintptr(length)) }
func evIOCGAbs(code int) uintptr    { return ioc(iocRead, uintptr(0x40+code), uintptr(absInfoSize)) }

// absInfo mirrors struct input_absinfo: value, minimum, maximum, fuzz,
// flat, resolution - six int32 fields, 24 bytes.
type absInfo struct {
	Value, Minimum, Maximum, Fuzz, Flat, Resolution int32
}

const absInfoSize = 24 // struct input_absinfo: 6 x int32 = 24 bytes.

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlGetString(fd int, req uintptr) (string, error) {
	buf := make([]byte, 256)
	if err := ioctl(fd, req, unsafe.Pointer(&buf[0])); err != nil {
		return "", err
	}
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n]), nil
}

// maxBytes is enough for KEY_CNT (768) worth of bitmask, the largest of
// the EV_* capability arrays this package reads.
const maxBytes = (768 + 7) / 8

func bitSet(buf []byte, bit int) bool {
	i := bit / 8
	if i >= len(buf) {
		return false
	}
	return buf[i]&(1<<uint(bit%8)) != 0
}

// ReadInitialValue reads the current value of a single (evType, code) axis
// from fd via the appropriate EVIOCG{KEY,LED,SND,SW,ABS} ioctl, mirroring
// open_evdev's initial-state readout in the reference CLI: bindings whose
// predicate is already true the moment a device is opened fire on the next
// Timeout call (see evreactor.Context.SeedState), instead of waiting for a
// transition that may never come again.
//
// ok is false if evType has no initial-state ioctl (e.g. EV_REL, which has
// no concept of a resting value) or the capability bit for code isn't set.
func ReadInitialValue(fd int, evType, code int) (value int32, ok bool) {
	capBuf := make([]byte, maxBytes)
	if err := ioctl(fd, evIOCGBit(evType, len(capBuf)), unsafe.Pointer(&capBuf[0])); err != nil {
		return 0, false
	}
	if !bitSet(capBuf, code) {
		return 0, false
	}

	switch evType {
	case 0x03: // EV_ABS
		var info absInfo
		if err := ioctl(fd, evIOCGAbs(code), unsafe.Pointer(&info)); err != nil {
			return 0, false
		}
		return info.Value, true
	case 0x01, 0x05, 0x11, 0x12: // EV_KEY, EV_SW, EV_LED, EV_SND
		stateBuf := make([]byte, maxBytes)
		var req uintptr
		switch evType {
		case 0x01:
			req = evIOCGKey(len(stateBuf))
		case 0x05:
			req = evIOCGSW(len(stateBuf))
		case 0x11:
			req = evIOCGLED(len(stateBuf))
		case 0x12:
			req = evIOCGSND(len(stateBuf))
		}
		if err := ioctl(fd, req, unsafe.Pointer(&stateBuf[0])); err != nil {
			return 0, false
		}
		if bitSet(stateBuf, code) {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
