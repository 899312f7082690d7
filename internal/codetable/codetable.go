// Package codetable provides the name <-> (type, code) mapping the
// configuration parser and monitor mode use. It is the Go equivalent of the
// reference implementation's codetab/nametab pair (tables.h), which is
// itself generated from the kernel's linux/input-event-codes.h; this
// package hand-seeds a representative subset of that same namespace rather
// than vendoring the kernel header, since the generator script is not part
// of the retrieved sources.
package codetable

import "sort"

// EV_* event type constants, mirroring linux/input-event-codes.h.
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvRel = 0x02
	EvAbs = 0x03
	EvMsc = 0x04
	EvSw  = 0x05
	EvLed = 0x11
	EvSnd = 0x12
	EvRep = 0x14
	EvFF  = 0x15
	EvPwr = 0x16
	EvFFStatus = 0x17
)

// Entry is one (name, type, code) row of the table.
type Entry struct {
	Name string
	Type uint16
	Code uint16
}

// entries must stay sorted by Name (ASCII order) - Lookup binary searches it.
var entries = []Entry{
	{"ABS_DISTANCE", EvAbs, 0x19},
	{"ABS_GAS", EvAbs, 0x09},
	{"ABS_HAT0X", EvAbs, 0x10},
	{"ABS_HAT0Y", EvAbs, 0x11},
	{"ABS_HAT1X", EvAbs, 0x12},
	{"ABS_HAT1Y", EvAbs, 0x13},
	{"ABS_HAT2X", EvAbs, 0x14},
	{"ABS_HAT2Y", EvAbs, 0x15},
	{"ABS_HAT3X", EvAbs, 0x16},
	{"ABS_HAT3Y", EvAbs, 0x17},
	{"ABS_MISC", EvAbs, 0x28},
	{"ABS_MT_BLOB_ID", EvAbs, 0x38},
	{"ABS_MT_DISTANCE", EvAbs, 0x3b},
	{"ABS_MT_ORIENTATION", EvAbs, 0x34},
	{"ABS_MT_POSITION_X", EvAbs, 0x35},
	{"ABS_MT_POSITION_Y", EvAbs, 0x36},
	{"ABS_MT_PRESSURE", EvAbs, 0x3a},
	{"ABS_MT_SLOT", EvAbs, 0x2f},
	{"ABS_MT_TOOL_TYPE", EvAbs, 0x37},
	{"ABS_MT_TOUCH_MAJOR", EvAbs, 0x30},
	{"ABS_MT_TOUCH_MINOR", EvAbs, 0x31},
	{"ABS_MT_TRACKING_ID", EvAbs, 0x39},
	{"ABS_MT_WIDTH_MAJOR", EvAbs, 0x32},
	{"ABS_MT_WIDTH_MINOR", EvAbs, 0x33},
	{"ABS_PRESSURE", EvAbs, 0x18},
	{"ABS_RUDDER", EvAbs, 0x07},
	{"ABS_RX", EvAbs, 0x03},
	{"ABS_RY", EvAbs, 0x04},
	{"ABS_RZ", EvAbs, 0x05},
	{"ABS_THROTTLE", EvAbs, 0x06},
	{"ABS_TILT_X", EvAbs, 0x1a},
	{"ABS_TILT_Y", EvAbs, 0x1b},
	{"ABS_TOOL_WIDTH", EvAbs, 0x1c},
	{"ABS_VOLUME", EvAbs, 0x20},
	{"ABS_WHEEL", EvAbs, 0x08},
	{"ABS_X", EvAbs, 0x00},
	{"ABS_Y", EvAbs, 0x01},
	{"ABS_Z", EvAbs, 0x02},
	{"BTN_0", EvKey, 0x100},
	{"BTN_1", EvKey, 0x101},
	{"BTN_2", EvKey, 0x102},
	{"BTN_3", EvKey, 0x103},
	{"BTN_4", EvKey, 0x104},
	{"BTN_5", EvKey, 0x105},
	{"BTN_A", EvKey, 0x130},
	{"BTN_B", EvKey, 0x131},
	{"BTN_BACK", EvKey, 0x116},
	{"BTN_BASE", EvKey, 0x126},
	{"BTN_C", EvKey, 0x132},
	{"BTN_DPAD_DOWN", EvKey, 0x221},
	{"BTN_DPAD_LEFT", EvKey, 0x222},
	{"BTN_DPAD_RIGHT", EvKey, 0x223},
	{"BTN_DPAD_UP", EvKey, 0x220},
	{"BTN_EAST", EvKey, 0x131},
	{"BTN_EXTRA", EvKey, 0x114},
	{"BTN_FORWARD", EvKey, 0x115},
	{"BTN_GEAR_DOWN", EvKey, 0x150},
	{"BTN_GEAR_UP", EvKey, 0x151},
	{"BTN_LEFT", EvKey, 0x110},
	{"BTN_MIDDLE", EvKey, 0x112},
	{"BTN_MODE", EvKey, 0x13c},
	{"BTN_NORTH", EvKey, 0x133},
	{"BTN_RIGHT", EvKey, 0x111},
	{"BTN_SELECT", EvKey, 0x13a},
	{"BTN_SIDE", EvKey, 0x113},
	{"BTN_SOUTH", EvKey, 0x130},
	{"BTN_START", EvKey, 0x13b},
	{"BTN_STYLUS", EvKey, 0x14b},
	{"BTN_STYLUS2", EvKey, 0x14c},
	{"BTN_TASK", EvKey, 0x117},
	{"BTN_THUMB", EvKey, 0x121},
	{"BTN_THUMB2", EvKey, 0x122},
	{"BTN_THUMBL", EvKey, 0x13d},
	{"BTN_THUMBR", EvKey, 0x13e},
	{"BTN_TL", EvKey, 0x136},
	{"BTN_TL2", EvKey, 0x138},
	{"BTN_TOOL_DOUBLETAP", EvKey, 0x14d},
	{"BTN_TOOL_FINGER", EvKey, 0x145},
	{"BTN_TOOL_PEN", EvKey, 0x140},
	{"BTN_TOOL_RUBBER", EvKey, 0x141},
	{"BTN_TOOL_TRIPLETAP", EvKey, 0x14e},
	{"BTN_TOP", EvKey, 0x123},
	{"BTN_TOP2", EvKey, 0x124},
	{"BTN_TOUCH", EvKey, 0x14a},
	{"BTN_TR", EvKey, 0x137},
	{"BTN_TR2", EvKey, 0x139},
	{"BTN_TRIGGER", EvKey, 0x120},
	{"BTN_WEST", EvKey, 0x134},
	{"BTN_X", EvKey, 0x133},
	{"BTN_Y", EvKey, 0x134},
	{"BTN_Z", EvKey, 0x135},
	{"KEY_0", EvKey, 11},
	{"KEY_1", EvKey, 2},
	{"KEY_2", EvKey, 3},
	{"KEY_3", EvKey, 4},
	{"KEY_4", EvKey, 5},
	{"KEY_5", EvKey, 6},
	{"KEY_6", EvKey, 7},
	{"KEY_7", EvKey, 8},
	{"KEY_8", EvKey, 9},
	{"KEY_9", EvKey, 10},
	{"KEY_A", EvKey, 30},
	{"KEY_APOSTROPHE", EvKey, 40},
	{"KEY_B", EvKey, 48},
	{"KEY_BACKSLASH", EvKey, 43},
	{"KEY_BACKSPACE", EvKey, 14},
	{"KEY_BRIGHTNESSDOWN", EvKey, 224},
	{"KEY_BRIGHTNESSUP", EvKey, 225},
	{"KEY_C", EvKey, 46},
	{"KEY_CAPSLOCK", EvKey, 58},
	{"KEY_COMMA", EvKey, 51},
	{"KEY_COMPOSE", EvKey, 127},
	{"KEY_D", EvKey, 32},
	{"KEY_DELETE", EvKey, 111},
	{"KEY_DOT", EvKey, 52},
	{"KEY_DOWN", EvKey, 108},
	{"KEY_E", EvKey, 18},
	{"KEY_END", EvKey, 107},
	{"KEY_ENTER", EvKey, 28},
	{"KEY_EQUAL", EvKey, 13},
	{"KEY_ESC", EvKey, 1},
	{"KEY_F", EvKey, 33},
	{"KEY_F1", EvKey, 59},
	{"KEY_F10", EvKey, 68},
	{"KEY_F11", EvKey, 87},
	{"KEY_F12", EvKey, 88},
	{"KEY_F2", EvKey, 60},
	{"KEY_F3", EvKey, 61},
	{"KEY_F4", EvKey, 62},
	{"KEY_F5", EvKey, 63},
	{"KEY_F6", EvKey, 64},
	{"KEY_F7", EvKey, 65},
	{"KEY_F8", EvKey, 66},
	{"KEY_F9", EvKey, 67},
	{"KEY_G", EvKey, 34},
	{"KEY_GRAVE", EvKey, 41},
	{"KEY_H", EvKey, 35},
	{"KEY_HOME", EvKey, 102},
	{"KEY_I", EvKey, 23},
	{"KEY_INSERT", EvKey, 110},
	{"KEY_J", EvKey, 36},
	{"KEY_K", EvKey, 37},
	{"KEY_KPENTER", EvKey, 96},
	{"KEY_L", EvKey, 38},
	{"KEY_LEFT", EvKey, 105},
	{"KEY_LEFTALT", EvKey, 56},
	{"KEY_LEFTBRACE", EvKey, 26},
	{"KEY_LEFTCTRL", EvKey, 29},
	{"KEY_LEFTMETA", EvKey, 125},
	{"KEY_LEFTSHIFT", EvKey, 42},
	{"KEY_M", EvKey, 50},
	{"KEY_MINUS", EvKey, 12},
	{"KEY_MUTE", EvKey, 113},
	{"KEY_N", EvKey, 49},
	{"KEY_NUMLOCK", EvKey, 69},
	{"KEY_O", EvKey, 24},
	{"KEY_P", EvKey, 25},
	{"KEY_PAGEDOWN", EvKey, 109},
	{"KEY_PAGEUP", EvKey, 104},
	{"KEY_PAUSE", EvKey, 119},
	{"KEY_PLAYPAUSE", EvKey, 164},
	{"KEY_POWER", EvKey, 116},
	{"KEY_PRINT", EvKey, 99},
	{"KEY_Q", EvKey, 16},
	{"KEY_R", EvKey, 19},
	{"KEY_RIGHT", EvKey, 106},
	{"KEY_RIGHTALT", EvKey, 100},
	{"KEY_RIGHTBRACE", EvKey, 27},
	{"KEY_RIGHTCTRL", EvKey, 97},
	{"KEY_RIGHTMETA", EvKey, 126},
	{"KEY_RIGHTSHIFT", EvKey, 54},
	{"KEY_S", EvKey, 31},
	{"KEY_SCROLLLOCK", EvKey, 70},
	{"KEY_SEMICOLON", EvKey, 39},
	{"KEY_SLASH", EvKey, 53},
	{"KEY_SLEEP", EvKey, 142},
	{"KEY_SPACE", EvKey, 57},
	{"KEY_T", EvKey, 20},
	{"KEY_TAB", EvKey, 15},
	{"KEY_U", EvKey, 22},
	{"KEY_UP", EvKey, 103},
	{"KEY_V", EvKey, 47},
	{"KEY_VOLUMEDOWN", EvKey, 114},
	{"KEY_VOLUMEUP", EvKey, 115},
	{"KEY_W", EvKey, 17},
	{"KEY_X", EvKey, 45},
	{"KEY_Y", EvKey, 21},
	{"KEY_Z", EvKey, 44},
	{"LED_CAPSL", EvLed, 0x01},
	{"LED_KANA", EvLed, 0x04},
	{"LED_NUML", EvLed, 0x00},
	{"LED_SCROLLL", EvLed, 0x02},
	{"MSC_SCAN", EvMsc, 0x04},
	{"MSC_TIMESTAMP", EvMsc, 0x05},
	{"REL_DIAL", EvRel, 0x07},
	{"REL_HWHEEL", EvRel, 0x06},
	{"REL_MISC", EvRel, 0x09},
	{"REL_RX", EvRel, 0x03},
	{"REL_RY", EvRel, 0x04},
	{"REL_RZ", EvRel, 0x05},
	{"REL_WHEEL", EvRel, 0x08},
	{"REL_X", EvRel, 0x00},
	{"REL_Y", EvRel, 0x01},
	{"REL_Z", EvRel, 0x02},
	{"SND_BELL", EvSnd, 0x01},
	{"SND_CLICK", EvSnd, 0x00},
	{"SW_DOCK", EvSw, 0x05},
	{"SW_HEADPHONE_INSERT", EvSw, 0x02},
	{"SW_LID", EvSw, 0x00},
	{"SW_MICROPHONE_INSERT", EvSw, 0x04},
	{"SW_RFKILL_ALL", EvSw, 0x03},
	{"SW_TABLET_MODE", EvSw, 0x01},
	{"SYN_REPORT", EvSyn, 0x00},
}

func init() {
	if !sort.IsSorted(byName(entries)) {
		panic("codetable: entries not sorted by name")
	}
}

type byName []Entry

func (b byName) Len() int           { return len(b) }
func (b byName) Less(i, j int) bool { return b[i].Name < b[j].Name }
func (b byName) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }

// Lookup resolves a bare event name (e.g. "KEY_A") to its (type, code) pair
// via binary search over entries, mirroring the reference parser's
// codetab search.
func Lookup(name string) (evType, code uint16, ok bool) {
	i := sort.Search(len(entries), func(i int) bool { return entries[i].Name >= name })
	if i >= len(entries) || entries[i].Name != name {
		return 0, 0, false
	}
	return entries[i].Type, entries[i].Code, true
}

// TypeName returns the EV_* constant name for t, used by monitor mode.
func TypeName(t uint16) string {
	switch t {
	case EvSyn:
		return "EV_SYN"
	case EvKey:
		return "EV_KEY"
	case EvRel:
		return "EV_REL"
	case EvAbs:
		return "EV_ABS"
	case EvMsc:
		return "EV_MSC"
	case EvSw:
		return "EV_SW"
	case EvLed:
		return "EV_LED"
	case EvSnd:
		return "EV_SND"
	case EvRep:
		return "EV_REP"
	case EvFF:
		return "EV_FF"
	case EvPwr:
		return "EV_PWR"
	case EvFFStatus:
		return "EV_FF_STATUS"
	default:
		return "EV_UNKNOWN"
	}
}

// CodeName reverse-looks-up the name for (evType, code), or "" if this table
// doesn't carry it - monitor mode falls back to printing the raw numbers in
// that case.
func CodeName(evType, code uint16) string {
	for _, e := range entries {
		if e.Type == evType && e.Code == code {
			return e.Name
		}
	}
	return ""
}
