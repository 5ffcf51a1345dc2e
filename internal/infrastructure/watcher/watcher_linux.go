//go:build linux

package watcher

import (
	"context"
	"encoding/binary"
	"log/slog"

	"golang.org/x/sys/unix"
)

// pollTimeoutMillis bounds each poll(2) call so cancellation is noticed.
const pollTimeoutMillis = 100

func (w *Watcher) run(ctx context.Context) error {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		slog.Warn("inotify unavailable, polling instead", "error", err)
		return w.poll(ctx)
	}
	defer unix.Close(fd)

	// Watch the directory: games and editors replace the file by rename,
	// which a watch on the old inode would miss.
	if _, err := unix.InotifyAddWatch(fd, w.dir, unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		slog.Warn("inotify watch failed, polling instead", "dir", w.dir, "error", err)
		return w.poll(ctx)
	}

	// Checked after the watch is installed so a write in between is not lost
	w.notifyIfExists()

	buffer := make([]byte, 4096)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(fds, pollTimeoutMillis)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		if count == 0 {
			continue
		}

		n, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return err
		}

		if !eventsMatchName(buffer[:n], w.name) {
			continue
		}

		// Coalesce the burst of writes the game makes at the end of a match
		if err := sleep(ctx, w.debounce); err != nil {
			return err
		}
		drainEvents(fd, buffer)
		w.notify()
	}
}

// drainEvents discards queued inotify events without blocking.
func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}

// eventsMatchName reports whether any inotify event in buffer names target.
// Layout from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded to alignment
//	};
func eventsMatchName(buffer []byte, target string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}

		if nameLength > 0 {
			name := nullTerminated(buffer[offset+unix.SizeofInotifyEvent : offset+eventSize])
			if name == target {
				return true
			}
		}

		offset += eventSize
	}
	return false
}

func nullTerminated(data []byte) string {
	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}
	return string(data)
}
