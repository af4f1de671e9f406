package domain

// SiteLoader reads a directory of generated files into a FileSet.
type SiteLoader interface {
	Load(sitePath string) (FileSet, error)
	Write(sitePath string, files FileSet) error
}

// PolicyLoader resolves the effective policy for a site directory.
type PolicyLoader interface {
	Load(sitePath string) (Policy, error)
}

// Generator is the LLM collaborator boundary: prompt in, fresh file
// content out. The core builds prompts but never calls this itself.
type Generator interface {
	Generate(req RegenRequest) (string, error)
}

// AuditHistory persists audit score entries per site.
type AuditHistory interface {
	Save(sitePath string, entry AuditEntry) error
	Load(sitePath string) ([]AuditEntry, error)
}

// AuditEntry is one historical audit record.
type AuditEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Filename   string `json:"filename"`
	Score      int    `json:"score"`
	Grade      string `json:"grade"`
}

// GitInfo reports version-control provenance for a site directory.
type GitInfo interface {
	IsGitRepo(sitePath string) bool
	CommitHash(sitePath string) (string, error)
}
