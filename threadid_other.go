//go:build !linux && !windows

package rhfw

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentThreadID falls back to the goroutine id. Callers that need a stable
// thread identity lock their goroutine to its OS thread first, which makes
// the two equivalent for our purposes.
func currentThreadID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// "goroutine 18 [running]:..."
	field := bytes.Fields(bytes.TrimPrefix(buf[:n], []byte("goroutine ")))[0]
	id, err := strconv.ParseUint(string(field), 10, 64)
	if err != nil {
		fatalf("cannot parse goroutine id from %q", buf[:n])
	}
	return id
}
