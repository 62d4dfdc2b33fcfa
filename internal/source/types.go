package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (stdin, test, or generated).
	FileVirtual FileFlags = 1 << iota
	// FileHasBOM indicates the file starts with a UTF-8 byte order mark.
	FileHasBOM
	// FileHasCRLF indicates the file contains at least one \r\n sequence.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
// Content is the exact byte sequence read from disk: emitted output must
// round-trip byte-for-byte, so content is never rewritten, only inspected.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCount returns the number of lines in the file. A trailing newline
// does not start a new line.
func (f *File) LineCount() int {
	if len(f.Content) == 0 {
		return 0
	}
	n := len(f.LineIdx)
	if f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// Virtual reports whether the file was added from memory rather than disk.
func (f *File) Virtual() bool {
	return f.Flags&FileVirtual != 0
}
