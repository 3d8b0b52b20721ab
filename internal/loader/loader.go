// Package loader locates the executable to inspect. A path that
// exists is read verbatim; a bare name is searched on PATH, and script
// entry points (shebang files) are followed to their native
// interpreter.
package loader

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Find resolves name to a concrete file and returns its path and
// contents. Resolution order: the literal path if it exists, then each
// PATH directory when the name has no directory component. A found
// file starting with "#!" is replaced by the interpreter named on its
// first line, recursively.
func Find(name string) (string, []byte, error) {
	if fileExists(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", nil, fmt.Errorf("read %s: %w", name, err)
		}
		return name, data, nil
	}

	if filepath.IsAbs(name) || strings.ContainsRune(name, os.PathSeparator) {
		return "", nil, fmt.Errorf("executable %s: %w", name, os.ErrNotExist)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if !fileExists(candidate) {
			continue
		}
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if interp, ok := shebangInterpreter(data); ok {
			return Find(interp)
		}
		return candidate, data, nil
	}
	return "", nil, fmt.Errorf("executable %s not found on PATH: %w", name, os.ErrNotExist)
}

// shebangInterpreter returns the interpreter path from a "#!" first
// line: the first whitespace-separated token after the marker.
func shebangInterpreter(data []byte) (string, bool) {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return "", false
	}
	line := data[2:]
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// SHA256 returns the upper-case hex digest of data.
func SHA256(data []byte) string {
	return fmt.Sprintf("%X", sha256.Sum256(data))
}
