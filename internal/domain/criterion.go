package domain

// Criterion is one scored dimension of evaluation (innovation, feasibility,
// ...). MaxScore is the star ceiling, uniform across teams within one event.
type Criterion struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	Name     string `json:"name"`
	MaxScore int    `json:"max_score"`
	Position int    `json:"position"`
}
