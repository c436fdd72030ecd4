package repository

import "golang.org/x/mod/modfile"

// Repository represents a version controlled tree
type Repository struct {
	Kind    string
	Root    string
	Origin  string
	Project *Project
}

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // javascript, typescript, go or git
	Name         string // Name of the project (extracted from manifest files)
	RelativePath string // Slash separated path from project root to the inspected location
	GoModule     *modfile.Module
}
