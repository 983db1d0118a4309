// Package loader reads configuration sources into generic maps.
//
// File loaders parse TOML or YAML into map[string]any. The environment
// loader turns prefixed variables into the same shape, so all sources can
// be layered with DeepMerge before decoding.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates a config file extension with no loader.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader is a configuration source. A source that does not exist loads
// as nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem reads whole files. Tests substitute an in-memory map.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the OS file system.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns OSFS.
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format decodes one file syntax into a map.
type Format struct {
	Name   string
	decode func(source string, data []byte) (map[string]any, error)
}

// Supported formats.
var (
	TOML = Format{Name: "toml", decode: decodeTOML}
	YAML = Format{Name: "yaml", decode: decodeYAML}
)

// File loads one configuration file.
type File struct {
	fs     FileSystem
	path   string
	format Format
}

// NewFile creates a loader reading path from fsys as format. A nil fsys
// reads the OS file system.
func NewFile(fsys FileSystem, path string, format Format) *File {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &File{fs: fsys, path: path, format: format}
}

// ForPath returns the file loader matching the extension of path.
func ForPath(fsys FileSystem, path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewFile(fsys, path, TOML), nil
	case ".yaml", ".yml":
		return NewFile(fsys, path, YAML), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Path returns the file the loader reads.
func (l *File) Path() string { return l.path }

// Load reads and decodes the file.
func (l *File) Load() (map[string]any, error) {
	data, err := readFile(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return l.format.decode(l.path, data)
}

// LoadFromReader decodes configuration read from r.
func (l *File) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.format.decode("<reader>", data)
}

// readFile reads path, reporting a missing file as nil data.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return data, nil
}

// ParseError reports a file that does not decode. Line and Column are zero
// when the decoder gives no position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
