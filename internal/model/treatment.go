package model

// Treatment is an immutable catalog entry supplying default title,
// duration and description for a session. The engine looks entries up by
// id and never mutates the catalog.
type Treatment struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	FocusDosha           string          `json:"focus_dosha"`
	DurationMinutes      int             `json:"duration_minutes"`
	Description          string          `json:"description"`
	IdealPhase           string          `json:"ideal_phase"`
	RecommendedResources []string        `json:"recommended_resources"`
	Steps                []TreatmentStep `json:"steps"`
}

type TreatmentStep struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Description     string   `json:"description"`
	Instructions    []string `json:"instructions"`
}
