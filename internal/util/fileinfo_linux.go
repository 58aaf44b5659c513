package util

import "golang.org/x/sys/unix"

func modTimespec(st *unix.Stat_t) *unix.Timespec {
	return &st.Mtim
}
