// Package parsers provides document parsers for SDFormat robot descriptions.
package parsers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Benny93/chassis/internal/sdf"
)

// Parser defines the interface for document format parsers.
type Parser interface {
	// Parse parses a document and accumulates loading diagnostics. The
	// returned root is nil only when the content is not usable at all.
	Parse(path string, content []byte) (*sdf.Root, sdf.Errors)

	// Format returns the document format this parser handles.
	Format() string
}

// ForPath returns the parser responsible for the given file path, or nil
// when the extension is not a recognized document type.
func ForPath(path string) Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sdf", ".world":
		return NewSDFParser()
	default:
		return nil
	}
}

// LoadFile reads and parses a document from disk.
func LoadFile(path string) (*sdf.Root, sdf.Errors) {
	parser := ForPath(path)
	if parser == nil {
		return nil, sdf.Errors{sdf.Errorf(sdf.CodeFileRead,
			"Unrecognized document extension for file[%s].", path)}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, sdf.Errors{sdf.Errorf(sdf.CodeFileRead,
			"Unable to read file[%s]: %v.", path, err)}
	}

	return parser.Parse(path, content)
}
