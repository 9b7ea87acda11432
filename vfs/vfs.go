// Package vfs provides the file abstraction used by the importer.
package vfs

import (
	"os"
	"path/filepath"
)

type File interface {
	Path() string
	Load() ([]byte, error)
}

// DiskFile is a file on the local filesystem.
type DiskFile struct {
	path string
}

func NewDiskFile(path string) *DiskFile {
	return &DiskFile{path: path}
}

func (f *DiskFile) Path() string {
	return f.path
}

func (f *DiskFile) Load() ([]byte, error) {
	return os.ReadFile(f.path)
}

// MemoryFile holds its content in memory.
type MemoryFile struct {
	path string
	Data []byte
}

func NewMemoryFile(path string, data []byte) *MemoryFile {
	return &MemoryFile{path: path, Data: data}
}

func (f *MemoryFile) Path() string {
	return f.path
}

func (f *MemoryFile) Load() ([]byte, error) {
	return f.Data, nil
}

// FileSystem resolves relative paths against a list of directories.
// Files registered with Add take precedence over disk lookups.
type FileSystem struct {
	Dirs   []string
	memory map[string]File
}

func NewFileSystem(dirs ...string) *FileSystem {
	return &FileSystem{Dirs: dirs, memory: map[string]File{}}
}

func (fs *FileSystem) Add(f File) {
	if fs.memory == nil {
		fs.memory = map[string]File{}
	}
	fs.memory[filepath.ToSlash(filepath.Clean(f.Path()))] = f
}

// WithDirs returns a copy that searches dirs before fs.Dirs.
func (fs *FileSystem) WithDirs(dirs ...string) *FileSystem {
	return &FileSystem{Dirs: append(append([]string(nil), dirs...), fs.Dirs...), memory: fs.memory}
}

// LocateFile returns nil if path can't be found.
func (fs *FileSystem) LocateFile(path string) File {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		for _, dir := range fs.Dirs {
			candidates = append(candidates, filepath.Join(dir, path))
		}
	}
	for _, p := range candidates {
		if f, ok := fs.memory[filepath.ToSlash(filepath.Clean(p))]; ok {
			return f
		}
	}
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return NewDiskFile(p)
		}
	}
	return nil
}
