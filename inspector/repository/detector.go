package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
	"gopkg.in/ini.v1"
)

const (
	TypeJavaScript = "javascript"
	TypeTypeScript = "typescript"
	TypeGo         = "go"
	TypeGit        = "git"
	TypeUnknown    = "unknown"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	markers []string
	fs      afs.Service
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"package.json",  // npm, yarn and pnpm packages
			"tsconfig.json", // TypeScript projects without a manifest
			"jsconfig.json",
			"go.mod", // Go servers embedding a web client
			".git",
		},
		fs: afs.New(),
	}
}

// DetectProject identifies the project root for the given location and returns project info.
// When no marker is found, baseURL (if any) becomes the root.
func (d *Detector) DetectProject(location string, baseURL ...string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, marker := d.findProjectRoot(startDir)
	info := &Project{
		Type:     TypeUnknown,
		RootPath: startDir,
	}
	if rootPath == "" && len(baseURL) > 0 && baseURL[0] != "" {
		info.RootPath = baseURL[0]
	} else if rootPath != "" {
		info.RootPath = rootPath
		info.Type = determineProjectType(marker)
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = d.extractProjectName(info, marker)
	return info, nil
}

// DetectRepository identifies the git repository containing the given location;
// without one, the detected project root is reported instead
func (d *Detector) DetectRepository(location string) (*Repository, error) {
	project, err := d.DetectProject(location)
	if err != nil {
		return nil, err
	}
	startDir := project.RootPath
	if gitRoot := d.findGitRoot(startDir); gitRoot != "" {
		return &Repository{
			Kind:    TypeGit,
			Root:    gitRoot,
			Origin:  d.extractGitOrigin(gitRoot),
			Project: project,
		}, nil
	}
	return &Repository{Kind: project.Type, Root: project.RootPath, Project: project}, nil
}

// findProjectRoot searches up from startDir for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, marker
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			return ""
		}
		dir = parent
	}
}

// extractGitOrigin reads the origin URL from .git/config
func (d *Detector) extractGitOrigin(gitRoot string) string {
	cfg, err := ini.Load(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	section, err := cfg.GetSection(`remote "origin"`)
	if err != nil {
		return ""
	}
	return section.Key("url").String()
}

// extractProjectName reads the manifest matching marker, falling back to the directory name
func (d *Detector) extractProjectName(project *Project, marker string) string {
	var name string
	switch marker {
	case "package.json":
		name = d.extractPackageName(filepath.Join(project.RootPath, marker))
	case "go.mod":
		project.GoModule = d.extractGoModule(filepath.Join(project.RootPath, marker))
		if project.GoModule != nil {
			name = project.GoModule.Mod.Path
		}
	case ".git":
		name = originName(d.extractGitOrigin(project.RootPath))
	}
	if name == "" {
		name = filepath.Base(project.RootPath)
	}
	return name
}

func (d *Detector) extractPackageName(packageJSONPath string) string {
	data, err := d.fs.DownloadWithURL(context.Background(), packageJSONPath)
	if err != nil {
		return ""
	}
	manifest := struct {
		Name string `json:"name"`
	}{}
	if err = json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Name
}

func (d *Detector) extractGoModule(goModPath string) *modfile.Module {
	content, err := d.fs.DownloadWithURL(context.Background(), goModPath)
	if err != nil || len(content) == 0 {
		return nil
	}
	mod, err := modfile.ParseLax(goModPath, content, nil)
	if err != nil {
		return nil
	}
	return mod.Module
}

// originName returns the repository name of a git remote URL
func originName(origin string) string {
	origin = strings.TrimSuffix(strings.TrimSpace(origin), ".git")
	if origin == "" {
		return ""
	}
	if index := strings.LastIndexAny(origin, "/:"); index != -1 {
		return origin[index+1:]
	}
	return origin
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "package.json", "jsconfig.json":
		return TypeJavaScript
	case "tsconfig.json":
		return TypeTypeScript
	case "go.mod":
		return TypeGo
	case ".git":
		return TypeGit
	default:
		return TypeUnknown
	}
}
