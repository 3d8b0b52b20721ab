// Package deps enumerates and annotates the dynamic library
// dependencies of an ELF image: the DT_NEEDED list, the composed
// search path, and (on Linux/x86-64) the paths the dynamic interpreter
// actually resolves.
package deps

import (
	"debug/elf"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sunxfancy/ExeViewer/internal/elffile"
)

// Messages shown when no concrete resolved path is available.
const (
	NotFound       = "Not found"
	NotAvailable   = "Not available on current platform"
	defaultLibPath = "/lib:/usr/lib:/lib64:/usr/lib64"
)

// criticalPrefixes marks libraries the program cannot start without.
var criticalPrefixes = []string{
	"libc.so",
	"libstdc++.so",
	"libgcc_s.so",
	"ld-linux",
}

// Entry is one dynamic library dependency.
type Entry struct {
	Name       string
	Critical   bool
	SearchPath string
	Resolved   string
}

// List holds the probed dependencies of one image.
type List struct {
	RPath   string
	Entries []Entry

	logger zerolog.Logger
}

// Collect walks the dynamic array of f. The last DT_RPATH wins; every
// DT_NEEDED appends an entry in file order. LD_LIBRARY_PATH is read
// once and treated as a snapshot.
func Collect(f *elffile.File, logger zerolog.Logger) *List {
	l := &List{logger: logger.With().Str("component", "deps").Logger()}

	dyn, ok := f.DynamicArray()
	if !ok {
		return l
	}

	for _, d := range dyn {
		if d.Tag != elf.DT_RPATH && d.Tag != elf.DT_RUNPATH {
			continue
		}
		if s, ok := f.DynString(d.Val); ok {
			l.RPath = s
		}
	}

	searchPath := composeSearchPath(l.RPath, os.Getenv("LD_LIBRARY_PATH"))
	for _, d := range dyn {
		if d.Tag != elf.DT_NEEDED {
			continue
		}
		name, ok := f.DynString(d.Val)
		if !ok {
			continue
		}
		l.Entries = append(l.Entries, Entry{
			Name:       name,
			Critical:   criticalLibrary(name),
			SearchPath: searchPath,
		})
	}
	l.logger.Debug().Int("needed", len(l.Entries)).Str("rpath", l.RPath).Msg("collected dependencies")
	return l
}

func criticalLibrary(name string) bool {
	for _, prefix := range criticalPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// composeSearchPath joins rpath, LD_LIBRARY_PATH and the default
// system directories with ":", omitting absent elements.
func composeSearchPath(rpath, ldLibraryPath string) string {
	var parts []string
	if rpath != "" {
		parts = append(parts, rpath)
	}
	if ldLibraryPath != "" {
		parts = append(parts, ldLibraryPath)
	}
	parts = append(parts, defaultLibPath)
	return strings.Join(parts, ":")
}

// Resolve fills in the Resolved field of every entry. On Linux/x86-64
// it runs the image's own interpreter in list mode and joins the
// output back by name; anywhere else every entry reports platform
// unavailability. Spawn or parse failures degrade to "Not found".
func (l *List) Resolve(interp, binaryPath string) {
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" || interp == "" {
		for i := range l.Entries {
			l.Entries[i].Resolved = NotAvailable
		}
		return
	}

	resolved := l.interpreterList(interp, binaryPath)
	for i := range l.Entries {
		if path, ok := resolved[l.Entries[i].Name]; ok {
			l.Entries[i].Resolved = path
		} else {
			l.Entries[i].Resolved = NotFound
		}
	}
}

// interpreterList spawns `interp --list binary` and parses its output.
// Failures yield an empty map.
func (l *List) interpreterList(interp, binaryPath string) map[string]string {
	out, err := exec.Command(interp, "--list", binaryPath).Output()
	if err != nil {
		l.logger.Warn().Err(err).Str("interp", interp).Msg("interpreter list mode failed")
		return map[string]string{}
	}
	return ParseInterpreterList(string(out))
}

// ParseInterpreterList extracts name -> resolved path pairs from
// dynamic-linker list output. Lines have the shape
// "name => path (0xaddr)"; entries with an empty path are discarded.
func ParseInterpreterList(out string) map[string]string {
	resolved := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		name, rest, ok := strings.Cut(line, "=>")
		if !ok {
			continue
		}
		i := strings.Index(rest, "(")
		if i < 0 {
			continue
		}
		path := rest[:i]
		name = strings.TrimSpace(name)
		path = strings.TrimSpace(path)
		if name == "" || path == "" {
			continue
		}
		resolved[name] = path
	}
	return resolved
}
