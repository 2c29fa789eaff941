package fsutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// tailChunk is how much is read per backwards step while tailing.
const tailChunk = 8 * 1024

// TailLines returns the last n lines of the file at path, preserving their
// trailing newlines. The file is read backwards in chunks so large logs are
// not loaded whole. Symlinks are followed: the path is an operator-configured
// log that may live anywhere.
func TailLines(path string, n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	file, err := os.Open(filepath.Clean(path)) // #nosec G304 -- operator-configured log path
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	size := info.Size()
	if size == 0 {
		return "", nil
	}

	var buf []byte
	offset := size
	for offset > 0 {
		step := int64(tailChunk)
		if offset < step {
			step = offset
		}
		offset -= step

		chunk := make([]byte, step)
		if _, err := file.ReadAt(chunk, offset); err != nil && err != io.EOF {
			return "", err
		}
		buf = append(chunk, buf...)

		// One extra newline is needed when the file ends with one.
		if countLines(buf) > n {
			break
		}
	}

	return lastLines(buf, n), nil
}

func countLines(b []byte) int {
	return bytes.Count(b, []byte{'\n'})
}

// lastLines keeps the final n lines of b. A trailing newline terminates the
// last line rather than starting an empty one.
func lastLines(b []byte, n int) string {
	body := b
	trailing := len(body) > 0 && body[len(body)-1] == '\n'
	if trailing {
		body = body[:len(body)-1]
	}

	idx := len(body)
	for i := 0; i < n; i++ {
		prev := bytes.LastIndexByte(body[:idx], '\n')
		if prev < 0 {
			idx = 0
			break
		}
		idx = prev
		if i == n-1 {
			idx++
		}
	}

	out := body[idx:]
	if trailing {
		out = append(out[:len(out):len(out)], '\n')
	}
	return string(out)
}
