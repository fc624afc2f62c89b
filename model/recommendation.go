package model

const (
	SourceContent       = "content"
	SourceCollaborative = "collaborative"
)

// Recommendation is a place in the final ranked list. Score is the content
// score, the number of interests shared with the user; collaborative
// entries have score 0.
type Recommendation struct {
	Place  Place  `json:"place"`
	Score  int    `json:"score"`
	Source string `json:"source"`
}
