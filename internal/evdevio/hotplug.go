package evdevio

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// inotifyEventHeaderSize is sizeof(struct inotify_event) sans its flexible
// "name" array: int wd, uint32 mask, uint32 cookie, uint32 len.
const inotifyEventHeaderSize = 16

// HotplugWatcher notifies of event nodes appearing in a device directory
// (normally /dev/input), via inotify(7) directly - the same facility and
// the same IN_CREATE|IN_ONLYDIR mask the reference CLI's main() uses
// around its own inotify_init1/inotify_add_watch call
// (original_source/src/evev.c). A raw inotify fd is directly pollable,
// unlike fsnotify's watcher (whose kqueue/ReadDirectoryChangesW/inotify
// backends don't share a single fd concept, so the library never exposes
// one), so it can be multiplexed into the same epoll set as the opened
// device fds instead of requiring its own goroutine and a self-pipe.
type HotplugWatcher struct {
	fd  int
	dir string
}

// NewHotplugWatcher starts watching dir for newly created entries. Names
// are not filtered: Drain reports every created entry, not only "eventN"
// nodes.
func NewHotplugWatcher(dir string) (*HotplugWatcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK)
	if err != nil {
		return nil, fmt.Errorf("evdevio: inotify_init1: %w", err)
	}
	if _, err := unix.InotifyAddWatch(fd, dir, unix.IN_CREATE|unix.IN_ONLYDIR); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("evdevio: inotify_add_watch %s: %w", dir, err)
	}
	return &HotplugWatcher{fd: fd, dir: dir}, nil
}

// Close stops the watch.
func (h *HotplugWatcher) Close() error {
	return unix.Close(h.fd)
}

// FD returns the inotify instance's file descriptor, for registration with
// a [Poller].
func (h *HotplugWatcher) FD() int {
	return h.fd
}

// HotplugEvent names a newly created device node. The reference CLI only
// ever watches IN_CREATE - a device disappearing is instead discovered the
// hard way, as a failed read on its own now-dead fd - so this package
// doesn't report removal either; see [Device.ReadEvents].
type HotplugEvent struct {
	Path string
}

// Drain reads every pending inotify event and reports the ones that carry
// a name (a name-less event means the watched directory entry itself
// changed, not an entry within it - nothing to act on).
func (h *HotplugWatcher) Drain() ([]HotplugEvent, error) {
	var buf [4096]byte
	n, err := unix.Read(h.fd, buf[:])
	if err != nil {
		if err == unix.EAGAIN {
			return nil, nil
		}
		return nil, fmt.Errorf("evdevio: read inotify fd: %w", err)
	}

	var out []HotplugEvent
	for off := 0; off+inotifyEventHeaderSize <= n; {
		nameLen := int(binary.LittleEndian.Uint32(buf[off+12 : off+16]))
		nameStart := off + inotifyEventHeaderSize
		nameEnd := nameStart + nameLen
		if nameEnd > n {
			break
		}
		if name := cString(buf[nameStart:nameEnd]); name != "" {
			out = append(out, HotplugEvent{Path: h.dir + "/" + name})
		}
		off = nameEnd
	}
	return out, nil
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
