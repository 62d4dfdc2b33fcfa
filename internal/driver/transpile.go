package driver

import (
	"crypto/sha256"

	"py2ts/internal/engine"
	"py2ts/internal/source"
)

// TranspileResult holds everything produced for a single source file.
type TranspileResult struct {
	FileSet *source.FileSet
	File    *source.File
	Output  []byte
	// HeaderPath is the path recorded in the output header line.
	HeaderPath string
	// FromCache is set when the output was served from the disk cache.
	FromCache bool
}

// Transpile loads path from disk and runs the engine over it. headerPath is
// the path spelling to record in the output header; when empty, path is used
// as given.
func Transpile(path, headerPath string) (*TranspileResult, error) {
	if headerPath == "" {
		headerPath = path
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	res := engine.Transpile(file, engine.Options{HeaderPath: headerPath})
	return &TranspileResult{
		FileSet:    fs,
		File:       file,
		Output:     res.Output,
		HeaderPath: headerPath,
	}, nil
}

// TranspileSource runs the engine over in-memory content (stdin, tests).
func TranspileSource(name string, content []byte) *TranspileResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	file := fs.Get(fileID)

	res := engine.Transpile(file, engine.Options{HeaderPath: name})
	return &TranspileResult{
		FileSet:    fs,
		File:       file,
		Output:     res.Output,
		HeaderPath: name,
	}
}

// TranspileWithCache behaves like Transpile but consults the disk cache
// first. A nil cache degrades to Transpile.
func TranspileWithCache(cache *DiskCache, path, headerPath string) (*TranspileResult, error) {
	if headerPath == "" {
		headerPath = path
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	key := cacheKey(file.Hash, headerPath)
	var payload CachePayload
	if ok, err := cache.Get(key, &payload); err == nil && ok {
		return &TranspileResult{
			FileSet:    fs,
			File:       file,
			Output:     payload.Output,
			HeaderPath: headerPath,
			FromCache:  true,
		}, nil
	}

	res := engine.Transpile(file, engine.Options{HeaderPath: headerPath})
	payload = CachePayload{
		Schema:     diskCacheSchemaVersion,
		SourcePath: headerPath,
		SourceHash: file.Hash,
		Output:     res.Output,
	}
	// Ошибка записи в кеш не должна ломать транспиляцию
	_ = cache.Put(key, &payload)

	return &TranspileResult{
		FileSet:    fs,
		File:       file,
		Output:     res.Output,
		HeaderPath: headerPath,
	}, nil
}

// cacheKey mixes the content hash with the header path: identical content
// under two spellings still emits two different header lines.
func cacheKey(contentHash [32]byte, headerPath string) Digest {
	h := sha256.New()
	h.Write(contentHash[:])
	h.Write([]byte{0})
	h.Write([]byte(headerPath))
	var key Digest
	copy(key[:], h.Sum(nil))
	return key
}
