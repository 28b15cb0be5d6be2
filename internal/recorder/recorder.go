package recorder

// SuggestionEvent records one generated ticket suggestion.
type SuggestionEvent struct {
	Game     string
	Strategy string
	Numbers  string // hyphen-joined main numbers, e.g. "4-12-19-23-31-40-47"
	Bonus    int
}

// UpdateEvent records one draw-history update or repair run.
type UpdateEvent struct {
	Game       string
	Trigger    string // "MANUAL", "SCHEDULED", "REPAIR", "INITIAL"
	DrawsAdded int
	Years      string // affected years, e.g. "2023,2024"; empty for routine updates
	Note       string
}

// Recorder persists historical events for later analysis.
type Recorder interface {
	RecordSuggestion(evt *SuggestionEvent) error
	RecordUpdate(evt *UpdateEvent) error
	Close() error
}
