package util

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FileInfo contains the attributes used to detect that a file changed.
type FileInfo struct {
	ModTime int64  // Last modification time, nanoseconds since epoch
	Size    int64  // File size in bytes
	Inode   uint64 // Inode number
}

// GetFileInfo stats filepath, including its inode number.
// Supported on Linux and macOS.
func GetFileInfo(filepath string) (*FileInfo, error) {
	var st unix.Stat_t
	if err := unix.Stat(filepath, &st); err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filepath, err)
	}

	mtime := modTimespec(&st)
	return &FileInfo{
		ModTime: mtime.Nano(),
		Size:    st.Size,
		Inode:   uint64(st.Ino),
	}, nil
}

// Same reports whether two stats describe the same unchanged file.
func (fi *FileInfo) Same(other *FileInfo) bool {
	if fi == nil || other == nil {
		return false
	}
	return fi.Inode == other.Inode && fi.Size == other.Size && fi.ModTime == other.ModTime
}
