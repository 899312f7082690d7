package evreactor

import "fmt"

// Typecode identifies a single evdev axis/key/switch: the event-type class
// (EV_KEY, EV_ABS, EV_SW, ...) packed into the high 16 bits, and the
// event-code (KEY_A, ABS_X, SW_LID, ...) packed into the low 16 bits. Two
// inputs are distinct iff their typecodes differ.
type Typecode uint32

// NewTypecode packs an event type and code into a single [Typecode].
func NewTypecode(evType, code uint16) Typecode {
	return Typecode(uint32(evType)<<16 | uint32(code))
}

// Type returns the packed event-type class.
func (t Typecode) Type() uint16 {
	return uint16(t >> 16)
}

// Code returns the packed event-code.
func (t Typecode) Code() uint16 {
	return uint16(t & 0xffff)
}

func (t Typecode) String() string {
	return fmt.Sprintf("type=%d code=%d", t.Type(), t.Code())
}
