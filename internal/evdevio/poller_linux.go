//go:build linux

package evdevio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Poller is a minimal epoll wrapper for the reactor's single-goroutine run
// loop: register every open device fd for readability, then Wait with the
// timeout the Context's InputEvent/Timeout calls compute. Adapted from the
// eventloop package's FastPoller, stripped of its concurrency machinery -
// RWMutex-guarded fd table, atomic version counter, direct-indexed array -
// since nothing here registers or polls from more than one goroutine.
type Poller struct {
	epfd     int
	eventBuf []unix.EpollEvent
}

// NewPoller creates and initializes an epoll instance.
func NewPoller() (*Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("evdevio: epoll_create1: %w", err)
	}
	return &Poller{epfd: epfd, eventBuf: make([]unix.EpollEvent, 64)}, nil
}

// Close releases the epoll instance.
func (p *Poller) Close() error {
	return unix.Close(p.epfd)
}

// Add registers fd for readability, tagging ready events with fd itself so
// Wait's caller can map them straight back to a Device.
func (p *Poller) Add(fd int) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

// Remove unregisters fd, e.g. once its device has gone away
// ([HotplugWatcher] does not report removals).
func (p *Poller) Remove(fd int) error {
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

// Wait blocks for up to timeoutMS milliseconds (or indefinitely if
// negative) and returns the fds that became readable. EINTR is treated as
// "no fds ready, try again" rather than an error, the same way the
// reference CLI's epoll_wait loop tolerates a signal delivery.
func (p *Poller) Wait(timeoutMS int) ([]int, error) {
	n, err := unix.EpollWait(p.epfd, p.eventBuf, timeoutMS)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, fmt.Errorf("evdevio: epoll_wait: %w", err)
	}
	fds := make([]int, n)
	for i := 0; i < n; i++ {
		fds[i] = int(p.eventBuf[i].Fd)
	}
	return fds, nil
}
