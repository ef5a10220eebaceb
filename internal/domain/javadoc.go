package domain

// JavadocResult describes one javadoc generation.
type JavadocResult struct {
	SourceDir  string `json:"source_dir"`
	OutputDir  string `json:"output_dir,omitempty"`
	Files      int    `json:"files"`
	Classpath  string `json:"classpath,omitempty"`
	IndexFound bool   `json:"index_found"`
	Message    string `json:"message"`
	CommitHash string `json:"commit_hash,omitempty"`
}

// RepositoryRequest asks for javadoc generated from a remote Git repository.
type RepositoryRequest struct {
	RepoURL   string `json:"repoUrl"`
	Branch    string `json:"branch,omitempty"`
	OutputDir string `json:"outputDir,omitempty"`
	Classpath string `json:"classpath,omitempty"`
}
