package domain

import (
	"strings"
	"time"
)

// Goal is the stated reason a user is on the platform. The generic
// "networking" goal is compatible with every specific goal; the reverse does
// not hold.
type Goal string

const (
	GoalNetworking    Goal = "networking"
	GoalCollaboration Goal = "collaboration"
	GoalJob           Goal = "job"
	GoalMentorship    Goal = "mentorship"
)

func ParseGoal(s string) (Goal, bool) {
	switch Goal(strings.ToLower(strings.TrimSpace(s))) {
	case GoalNetworking:
		return GoalNetworking, true
	case GoalCollaboration:
		return GoalCollaboration, true
	case GoalJob:
		return GoalJob, true
	case GoalMentorship:
		return GoalMentorship, true
	}
	return "", false
}

// Compatible reports whether a candidate holding goal g satisfies the
// requested goal. Networking candidates match any request.
func (g Goal) Compatible(requested Goal) bool {
	if g == GoalNetworking {
		return true
	}
	return g == requested
}

type Profile struct {
	ID                int        `json:"id" db:"id"`
	UserID            int        `json:"user_id" db:"user_id"`
	DisplayName       string     `json:"display_name" db:"display_name"`
	Bio               *string    `json:"bio" db:"bio"`
	Industry          *string    `json:"industry" db:"industry"`
	ExperienceLevel   *string    `json:"experience_level" db:"experience_level"`
	Skills            []string   `json:"skills" db:"skills"`
	Interests         []string   `json:"interests" db:"interests"`
	Goal              Goal       `json:"goal" db:"goal"`
	LocationLat       *float64   `json:"location_lat" db:"location_lat"`
	LocationLon       *float64   `json:"location_lon" db:"location_lon"`
	LocationUpdatedAt *time.Time `json:"location_updated_at" db:"location_updated_at"`
	AvatarKey         *string    `json:"avatar_key" db:"avatar_key"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

func (p *Profile) HasLocation() bool {
	return p.LocationLat != nil && p.LocationLon != nil
}

// Completeness returns a 0-100 display percentage derived from how many
// profile sections are filled in.
func (p *Profile) Completeness() int {
	total := 6
	filled := 0
	if strings.TrimSpace(p.DisplayName) != "" {
		filled++
	}
	if p.Bio != nil && strings.TrimSpace(*p.Bio) != "" {
		filled++
	}
	if p.Industry != nil && strings.TrimSpace(*p.Industry) != "" {
		filled++
	}
	if p.ExperienceLevel != nil && strings.TrimSpace(*p.ExperienceLevel) != "" {
		filled++
	}
	if len(p.Skills) > 0 {
		filled++
	}
	if p.AvatarKey != nil && *p.AvatarKey != "" {
		filled++
	}
	return filled * 100 / total
}

// Candidate is a profile annotated with viewer-relative fields. MatchScore is
// only meaningful for the user the candidate was generated for and is never
// persisted.
type Candidate struct {
	Profile
	MatchScore int      `json:"match_score"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}
