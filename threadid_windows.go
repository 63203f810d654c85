//go:build windows

package rhfw

import "golang.org/x/sys/windows"

func currentThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
