package domain

// DiagramResult is the outcome of one diagram generation over a source tree.
type DiagramResult struct {
	RootPath string             `json:"root_path"`
	Files    int                `json:"files"`
	Document *DiagramDocument   `json:"document"`
	Registry *TypeRegistry      `json:"-"`
	Warnings []FileParseWarning `json:"warnings,omitempty"`
}

// PlantUML returns the rendered document text.
func (r *DiagramResult) PlantUML() string {
	if r == nil || r.Document == nil {
		return (&DiagramDocument{}).String()
	}
	return r.Document.String()
}
