package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.py", []byte("print(1)\n"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	latestID, exists := fs.GetLatest("test.py")
	if !exists {
		t.Error("Expected file to exist after Add")
	}
	if latestID != id1 {
		t.Errorf("Expected latest ID to be %d, got %d", id1, latestID)
	}

	// Повторное добавление того же пути создаёт новую версию
	id2 := fs.Add("test.py", []byte("print(2)\n"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists = fs.GetLatest("test.py")
	if !exists {
		t.Error("Expected file to exist after second Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	// Старая версия остаётся доступной по своему ID
	file1 := fs.Get(id1)
	if string(file1.Content) != "print(1)\n" {
		t.Errorf("Expected first file content to be 'print(1)\\n', got %q", string(file1.Content))
	}
	file2 := fs.Get(id2)
	if string(file2.Content) != "print(2)\n" {
		t.Errorf("Expected second file content to be 'print(2)\\n', got %q", string(file2.Content))
	}

	if file1.Hash == file2.Hash {
		t.Error("Expected different content to produce different hashes")
	}
}

func TestLoadKeepsContentVerbatim(t *testing.T) {
	tmp := t.TempDir()

	// BOM, CRLF и отсутствие завершающего \n должны сохраниться как есть
	raw := []byte("\xEF\xBB\xBFimport os\r\nprint(\"hi\")")
	path := filepath.Join(tmp, "script.py")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	file := fs.Get(id)

	if string(file.Content) != string(raw) {
		t.Errorf("content was rewritten: got %q, want %q", file.Content, raw)
	}
	if file.Flags&FileHasBOM == 0 {
		t.Error("expected FileHasBOM flag")
	}
	if file.Flags&FileHasCRLF == 0 {
		t.Error("expected FileHasCRLF flag")
	}
	if file.Virtual() {
		t.Error("disk file must not carry FileVirtual")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.py")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	// "a\nb\n" — позиции \n на 1 и 3
	id := fs.AddVirtual("a.py", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, off := range expected {
		if file.LineIdx[i] != off {
			t.Errorf("LineIdx[%d]: expected %d, got %d", i, off, file.LineIdx[i])
		}
	}
	if !file.Virtual() {
		t.Error("expected FileVirtual flag")
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"single no newline", "x = 1", 1},
		{"single with newline", "x = 1\n", 1},
		{"two lines", "x = 1\ny = 2\n", 2},
		{"trailing partial", "x = 1\ny = 2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			id := fs.AddVirtual("t.py", []byte(tt.content))
			if got := fs.Get(id).LineCount(); got != tt.want {
				t.Errorf("LineCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
