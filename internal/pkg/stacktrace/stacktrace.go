// Package stacktrace trims raw goroutine stacks down to the frames that
// belong to this repository, so panic logs stay readable.
package stacktrace

import "strings"

// InternalFrames extracts "internal/...go:line" locations from a raw stack
// produced by runtime/debug.Stack. Frames outside internal/ are dropped.
func InternalFrames(stack []byte) []string {
	var frames []string

	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, "/internal/")
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}

		frame := line[idx+1:]
		if end := strings.IndexByte(frame, ' '); end != -1 {
			frame = frame[:end]
		}
		frames = append(frames, frame)
	}

	return frames
}
