package source

import (
	"bytes"
	"path/filepath"
)

// hasBOM reports whether content starts with a UTF-8 byte order mark.
func hasBOM(content []byte) bool {
	return len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF
}

// hasCRLF reports whether content contains at least one \r\n sequence.
// Lone \r bytes do not count.
func hasCRLF(content []byte) bool {
	return bytes.Contains(content, []byte{'\r', '\n'})
}

// buildLineIndex records the byte offset of every \n in content.
func buildLineIndex(content []byte) []uint32 {
	var out []uint32
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func normalizePath(p string) string {
	// единый вид пути для индекса и кроссплатформенных логов
	return filepath.ToSlash(filepath.Clean(p))
}
