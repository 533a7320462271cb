package models

// Resource is a learning resource from the local dataset or the web.
type Resource struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Description  string   `json:"description,omitempty"`
	Subject      string   `json:"subject,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	ResourceType string   `json:"resource_type,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Rating       float64  `json:"rating,omitempty"`
	Source       string   `json:"source"`
	Score        float64  `json:"similarity_score"`
}

const (
	SourceLocal = "local"
	SourceWeb   = "web"
)
