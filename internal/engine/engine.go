// Package engine holds the transpilation engine. The only engine today is
// the simulated one: it emits a marker header followed by the Python source
// verbatim, standing in for a real Python-to-TypeScript translation.
package engine

import (
	"py2ts/internal/source"
)

// HeaderPrefix opens the first line of every emitted file.
const HeaderPrefix = "// SIMULATED transpilation of "

// Options tweaks a single transpilation.
type Options struct {
	// HeaderPath overrides the path written into the header line. The CLI
	// passes the argument exactly as the user typed it; FileSet paths are
	// normalized and would not round-trip "./hello.py" style arguments.
	HeaderPath string
}

// Result is the outcome of transpiling one file.
type Result struct {
	// SourcePath is the path recorded in the header line.
	SourcePath string
	// Output is the complete emitted document: header line plus the source
	// content byte-for-byte.
	Output []byte
	// Simulated marks output produced by the placeholder engine.
	Simulated bool
}

// Header returns the marker line (with trailing newline) for path.
func Header(path string) string {
	return HeaderPrefix + path + "\n"
}

// Transpile produces the TypeScript rendition of file.
//
// Инвариант: всё после первой строки байт-в-байт совпадает с исходником.
func Transpile(file *source.File, opts Options) *Result {
	path := opts.HeaderPath
	if path == "" {
		path = file.Path
	}

	header := Header(path)
	out := make([]byte, 0, len(header)+len(file.Content))
	out = append(out, header...)
	out = append(out, file.Content...)

	return &Result{
		SourcePath: path,
		Output:     out,
		Simulated:  true,
	}
}
