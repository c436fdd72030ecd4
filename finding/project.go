package finding

// Project describes the linted project
type Project struct {
	Name          string `yaml:"name,omitempty" json:"name,omitempty"`
	Type          string `yaml:"type,omitempty" json:"type,omitempty"`
	RootPath      string `yaml:"rootPath,omitempty" json:"rootPath,omitempty"`
	RepositoryURL string `yaml:"repositoryURL,omitempty" json:"repositoryURL,omitempty"` // git origin when known
}
