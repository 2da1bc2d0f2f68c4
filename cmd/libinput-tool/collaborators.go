package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// osCollaborators implements libinput.Collaborators directly on top of
// golang.org/x/sys/unix, giving the engine real open(2)/close(2)/epoll(7)
// primitives instead of the raw syscall.Syscall calls the reference
// driver inlines for its single uinput ioctl.
type osCollaborators struct {
	epfd      int
	dispatch  map[int]func()
}

// newOSCollaborators creates the epoll instance backing AddFD/RemoveFD.
func newOSCollaborators() (*osCollaborators, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}
	return &osCollaborators{epfd: fd, dispatch: make(map[int]func())}, nil
}

func (c *osCollaborators) OpenRestricted(path string, flags int) (int, error) {
	fd, err := unix.Open(path, flags, 0)
	if err != nil {
		return -1, err
	}
	return fd, nil
}

func (c *osCollaborators) CloseRestricted(fd int) {
	unix.Close(fd)
}

// fdHandle is the handle AddFD hands back; it carries the fd so RemoveFD
// can find the same registration again without the caller tracking it
// separately.
type fdHandle struct {
	fd int
}

func (c *osCollaborators) AddFD(fd int, dispatch func(), userdata any) any {
	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	if err := unix.EpollCtl(c.epfd, unix.EPOLL_CTL_ADD, fd, &event); err != nil {
		return nil
	}
	c.dispatch[fd] = dispatch
	return &fdHandle{fd: fd}
}

func (c *osCollaborators) RemoveFD(handle any) {
	h, ok := handle.(*fdHandle)
	if !ok || h == nil {
		return
	}
	unix.EpollCtl(c.epfd, unix.EPOLL_CTL_DEL, h.fd, nil)
	delete(c.dispatch, h.fd)
}

// wait blocks for up to timeoutMs milliseconds and invokes the dispatch
// callback for every fd that became readable.
func (c *osCollaborators) wait(timeoutMs int) error {
	events := make([]unix.EpollEvent, 16)
	n, err := unix.EpollWait(c.epfd, events, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return fmt.Errorf("epoll_wait: %w", err)
	}
	for i := 0; i < n; i++ {
		if dispatch, ok := c.dispatch[int(events[i].Fd)]; ok {
			dispatch()
		}
	}
	return nil
}

func (c *osCollaborators) Close() error {
	return unix.Close(c.epfd)
}
