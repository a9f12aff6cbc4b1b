package domain

// MatchmakingFilters is the value object a matchmaking request is evaluated
// against. It is constructed once per request and never mutated. Empty fields
// mean "no constraint".
type MatchmakingFilters struct {
	Industry        string
	Skills          []string
	RadiusKm        int
	UseLocation     bool
	Goal            Goal
	ExperienceLevel string
}
