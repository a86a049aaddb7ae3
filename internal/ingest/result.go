package ingest

// Result holds the outcome of annotating an imported plan.
type Result struct {
	SessionsParsed     int `json:"sessions_parsed"`
	ExercisesReceived  int `json:"exercises_received"`
	ExercisesAnnotated int `json:"exercises_annotated"`
	CatalogMatches     int `json:"catalog_matches"`
	Flagged            int `json:"flagged"`

	Message string `json:"message,omitempty"`
}
