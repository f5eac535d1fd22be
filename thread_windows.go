package mockgl

import "golang.org/x/sys/windows"

func threadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
