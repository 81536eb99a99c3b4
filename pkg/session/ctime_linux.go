//go:build linux

package session

import (
	"os"
	"syscall"
	"time"
)

// createdTime approximates the file birth time. Linux exposes no portable
// birth time through os.FileInfo, so the inode change time stands in,
// falling back to the modification time.
func createdTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime()
}
