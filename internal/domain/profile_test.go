package domain

import "testing"

func TestParseGoal(t *testing.T) {
	tests := []struct {
		input string
		want  Goal
		ok    bool
	}{
		{"networking", GoalNetworking, true},
		{"  Collaboration ", GoalCollaboration, true},
		{"JOB", GoalJob, true},
		{"mentorship", GoalMentorship, true},
		{"dating", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseGoal(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseGoal(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGoalCompatible(t *testing.T) {
	tests := []struct {
		name      string
		candidate Goal
		requested Goal
		want      bool
	}{
		{"networking matches networking", GoalNetworking, GoalNetworking, true},
		{"networking matches job", GoalNetworking, GoalJob, true},
		{"networking matches mentorship", GoalNetworking, GoalMentorship, true},
		{"job matches job", GoalJob, GoalJob, true},
		{"job does not match networking", GoalJob, GoalNetworking, false},
		{"mentorship does not match collaboration", GoalMentorship, GoalCollaboration, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.candidate.Compatible(tt.requested); got != tt.want {
				t.Errorf("Compatible(%q, %q) = %v, want %v", tt.candidate, tt.requested, got, tt.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestProfileCompleteness(t *testing.T) {
	empty := &Profile{}
	if got := empty.Completeness(); got != 0 {
		t.Errorf("empty profile completeness = %d, want 0", got)
	}

	full := &Profile{
		DisplayName:     "Alice",
		Bio:             strPtr("builds things"),
		Industry:        strPtr("fintech"),
		ExperienceLevel: strPtr("senior"),
		Skills:          []string{"go"},
		AvatarKey:       strPtr("1/a.png"),
	}
	if got := full.Completeness(); got != 100 {
		t.Errorf("full profile completeness = %d, want 100", got)
	}

	half := &Profile{
		DisplayName: "Bob",
		Bio:         strPtr("  "), // whitespace does not count
		Skills:      []string{"go", "sql"},
		Industry:    strPtr("gamedev"),
	}
	if got := half.Completeness(); got != 50 {
		t.Errorf("partial profile completeness = %d, want 50", got)
	}
}

func TestProfileHasLocation(t *testing.T) {
	lat, lon := 55.75, 37.62
	p := &Profile{LocationLat: &lat}
	if p.HasLocation() {
		t.Error("profile with only latitude should not report a location")
	}
	p.LocationLon = &lon
	if !p.HasLocation() {
		t.Error("profile with both coordinates should report a location")
	}
}
