package javascript

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/objguard/inspector/ast"
)

// Config controls which files an Inspector visits
type Config struct {
	SkipTests   bool     // skip *.test.* and *.spec.* files
	ExcludeDirs []string // directory names never entered
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ExcludeDirs: []string{"node_modules", ".git", "dist", "build", "vendor"},
	}
}

// File is a parsed source file with its scope chain
type File struct {
	Path      string
	Language  Language
	Source    []byte
	Program   *ast.Program
	Scopes    *ast.ScopeTree
	Module    bool // file uses import/export
	HasErrors bool // source contains syntax errors
}

// Line returns the text of a 1-based source line, "" when out of range
func (f *File) Line(number int) string {
	if number < 1 {
		return ""
	}
	lines := bytes.Split(f.Source, []byte("\n"))
	if number > len(lines) {
		return ""
	}
	return strings.TrimRight(string(lines[number-1]), "\r")
}

// Inspector parses JavaScript and TypeScript sources into ast files
type Inspector struct {
	config *Config
	fs     afs.Service
}

// Option configures an Inspector
type Option func(*Inspector)

// WithFS sets the file system service used to walk and download sources
func WithFS(fs afs.Service) Option {
	return func(i *Inspector) {
		i.fs = fs
	}
}

// NewInspector creates a new Inspector with the provided configuration
func NewInspector(config *Config, opts ...Option) *Inspector {
	if config == nil {
		config = DefaultConfig()
	}
	result := &Inspector{
		config: config,
		fs:     afs.New(),
	}
	for _, opt := range opts {
		opt(result)
	}
	return result
}

// InspectSource parses source code; the path selects the grammar
func (i *Inspector) InspectSource(ctx context.Context, path string, src []byte) (*File, error) {
	language, ok := LanguageOf(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(language.grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	b := &builder{src: src}
	program := b.program(tree.RootNode())
	return &File{
		Path:      path,
		Language:  language,
		Source:    src,
		Program:   program,
		Scopes:    ast.BuildScopes(program, b.module),
		Module:    b.module,
		HasErrors: b.hasErrors,
	}, nil
}

// InspectFile downloads and parses a source file
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*File, error) {
	if !IsSource(URL) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, URL)
	}
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return i.InspectSource(ctx, URL, src)
}

// Sources lists supported source files under location, honouring the configuration
func (i *Inspector) Sources(ctx context.Context, location string) ([]string, error) {
	var result []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !i.excluded(info.Name()), nil
		}
		if !IsSource(info.Name()) {
			return true, nil
		}
		if i.config.SkipTests && isTestFile(info.Name()) {
			return true, nil
		}
		result = append(result, url.Join(url.Join(baseURL, parent), info.Name()))
		return true, nil
	}
	if err := i.fs.Walk(ctx, location, visitor); err != nil {
		return nil, fmt.Errorf("error walking %s: %w", location, err)
	}
	return result, nil
}

// InspectPackage parses every supported source file under location
func (i *Inspector) InspectPackage(ctx context.Context, location string) ([]*File, error) {
	sources, err := i.Sources(ctx, location)
	if err != nil {
		return nil, err
	}
	var files []*File
	for _, URL := range sources {
		file, err := i.InspectFile(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("error processing %s: %w", URL, err)
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no JavaScript files found in: %s", location)
	}
	return files, nil
}

func (i *Inspector) excluded(dir string) bool {
	for _, candidate := range i.config.ExcludeDirs {
		if candidate == dir {
			return true
		}
	}
	return false
}

func isTestFile(name string) bool {
	return strings.Contains(name, ".test.") || strings.Contains(name, ".spec.")
}
