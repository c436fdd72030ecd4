package linter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/objguard/analyzer"
	"github.com/viant/objguard/baseline"
	"github.com/viant/objguard/config"
	"github.com/viant/objguard/finding"
	"github.com/viant/objguard/inspector/javascript"
	"github.com/viant/objguard/inspector/repository"
	"go.uber.org/zap"
)

// Linter runs the enabled rules over JavaScript and TypeScript sources
type Linter struct {
	config    *config.Config
	logger    *zap.Logger
	fs        afs.Service
	baseline  *baseline.Store
	skipTests bool
	inspector *javascript.Inspector
	detector  *repository.Detector
}

// New creates a linter
func New(opts ...Option) *Linter {
	l := &Linter{}
	for _, opt := range opts {
		opt(l)
	}
	if l.config == nil {
		l.config = config.Default()
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	if l.fs == nil {
		l.fs = afs.New()
	}
	inspectorConfig := javascript.DefaultConfig()
	inspectorConfig.SkipTests = l.skipTests
	inspectorConfig.ExcludeDirs = append(inspectorConfig.ExcludeDirs, l.config.Exclude...)
	l.inspector = javascript.NewInspector(inspectorConfig, javascript.WithFS(l.fs))
	l.detector = repository.New()
	return l
}

// LintSource lints in-memory source; path selects the grammar and labels findings
func (l *Linter) LintSource(ctx context.Context, path string, src []byte) ([]*finding.Finding, error) {
	rules, err := l.rules()
	if err != nil {
		return nil, err
	}
	file, err := l.inspector.InspectSource(ctx, path, src)
	if err != nil {
		return nil, err
	}
	findings, err := l.lint(file, path, rules)
	if err != nil {
		return nil, err
	}
	return l.filter(ctx, findings)
}

// LintFile lints a single file; finding paths are relative to the file's project root
func (l *Linter) LintFile(ctx context.Context, URL string) (*finding.Result, error) {
	return l.Lint(ctx, URL)
}

// LintDir lints every supported source under root
func (l *Linter) LintDir(ctx context.Context, root string) (*finding.Result, error) {
	return l.Lint(ctx, root)
}

// Lint lints files and directories; the project is detected from the first location
func (l *Linter) Lint(ctx context.Context, locations ...string) (*finding.Result, error) {
	rules, err := l.rules()
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		locations = []string{"."}
	}
	result := &finding.Result{}
	var project *repository.Project
	for _, location := range locations {
		sources, err := l.sources(ctx, location)
		if err != nil {
			return nil, err
		}
		if project == nil {
			project = l.detectProject(location)
			result.Project = &finding.Project{Name: project.Name, Type: project.Type, RootPath: project.RootPath}
			if repo, err := l.detector.DetectRepository(localPath(location)); err == nil && repo.Kind == repository.TypeGit {
				result.Project.RepositoryURL = repo.Origin
			}
		}
		for _, URL := range sources {
			file, err := l.inspector.InspectFile(ctx, URL)
			if err != nil {
				return nil, err
			}
			path := relativePath(project.RootPath, URL)
			findings, err := l.lint(file, path, rules)
			if err != nil {
				return nil, err
			}
			result.Files++
			result.Paths = append(result.Paths, path)
			result.Add(findings...)
		}
	}
	if result.Findings, err = l.filter(ctx, result.Findings); err != nil {
		return nil, err
	}
	result.Sort()
	l.logger.Info("lint completed",
		zap.String("project", result.Project.Name),
		zap.Int("files", result.Files),
		zap.Int("findings", len(result.Findings)))
	return result, nil
}

type preparedRule struct {
	rule    *analyzer.Rule
	options []string
}

// rules validates the configuration before any file is read
func (l *Linter) rules() ([]preparedRule, error) {
	if err := l.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	var result []preparedRule
	for _, rule := range l.config.EnabledRules() {
		result = append(result, preparedRule{rule: rule, options: l.config.Options(rule.Meta.ID)})
	}
	return result, nil
}

func (l *Linter) lint(file *javascript.File, path string, rules []preparedRule) ([]*finding.Finding, error) {
	logger := l.logger.With(zap.String("path", path))
	logger.Debug("linting file", zap.String("language", string(file.Language)), zap.Bool("module", file.Module))
	if file.HasErrors {
		logger.Warn("source contains syntax errors")
	}
	fileCtx := &fileContext{file: file, path: path}
	dispatch := dispatcher{}
	for _, prepared := range rules {
		visitor, err := prepared.rule.Create(&ruleContext{fileContext: fileCtx, ruleID: prepared.rule.Meta.ID}, prepared.options)
		if err != nil {
			return nil, err
		}
		dispatch.register(visitor)
	}
	dispatch.run(file.Program)
	if fileCtx.err != nil {
		return nil, fmt.Errorf("failed to fingerprint findings in %s: %w", path, fileCtx.err)
	}
	return fileCtx.findings, nil
}

func (l *Linter) filter(ctx context.Context, findings []*finding.Finding) ([]*finding.Finding, error) {
	if l.baseline == nil {
		return findings, nil
	}
	filtered, err := l.baseline.Filter(ctx, findings)
	if err != nil {
		return nil, fmt.Errorf("failed to apply baseline: %w", err)
	}
	if suppressed := len(findings) - len(filtered); suppressed > 0 {
		l.logger.Debug("baseline suppressed findings", zap.Int("count", suppressed))
	}
	return filtered, nil
}

func (l *Linter) sources(ctx context.Context, location string) ([]string, error) {
	info, err := os.Stat(localPath(location))
	if err == nil && !info.IsDir() {
		if !javascript.IsSource(location) {
			return nil, fmt.Errorf("%w: %s", javascript.ErrUnsupportedLanguage, location)
		}
		return []string{location}, nil
	}
	return l.inspector.Sources(ctx, location)
}

// detectProject labels the run; locations outside the local file system form their own project
func (l *Linter) detectProject(location string) *repository.Project {
	project, err := l.detector.DetectProject(localPath(location))
	if err != nil {
		l.logger.Debug("project detection failed", zap.String("location", location), zap.Error(err))
		root := localPath(location)
		if javascript.IsSource(root) {
			root = filepath.Dir(root)
		}
		return &repository.Project{RootPath: root, Type: repository.TypeUnknown, Name: filepath.Base(root)}
	}
	return project
}

// localPath strips the scheme and host of a file URL
func localPath(location string) string {
	if strings.Contains(location, "://") {
		return url.Path(location)
	}
	return location
}

// relativePath returns the slash separated path of URL under root, or its local path
func relativePath(root, URL string) string {
	location := localPath(URL)
	absolute, err := filepath.Abs(location)
	if err != nil {
		return filepath.ToSlash(location)
	}
	rel, err := filepath.Rel(root, absolute)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(location)
	}
	return filepath.ToSlash(rel)
}
