package types

// LinkedInOptimizeRequest asks the backend to rewrite a LinkedIn profile section.
type LinkedInOptimizeRequest struct {
	Section    string `json:"section" validate:"required,oneof=headline about experience skills"`
	Content    string `json:"content" validate:"required"`
	TargetRole string `json:"target_role,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

// LinkedInOptimization is the optimized section returned by the backend.
type LinkedInOptimization struct {
	Section   string   `json:"section"`
	Original  string   `json:"original,omitempty"`
	Optimized string   `json:"optimized"`
	Keywords  []string `json:"keywords,omitempty"`
	Tips      []string `json:"tips,omitempty"`
}
