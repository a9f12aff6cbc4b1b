package domain

import "testing"

func TestParseSwipeAction(t *testing.T) {
	tests := []struct {
		input string
		want  SwipeAction
		ok    bool
	}{
		{"like", ActionLike, true},
		{"Pass", ActionPass, true},
		{" SAVE ", ActionSave, true},
		{"superlike", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseSwipeAction(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseSwipeAction(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSwipeActionStatus(t *testing.T) {
	if got := ActionLike.Status(); got != StatusPending {
		t.Errorf("like status = %q, want %q", got, StatusPending)
	}
	if got := ActionPass.Status(); got != StatusPassed {
		t.Errorf("pass status = %q, want %q", got, StatusPassed)
	}
	if got := ActionSave.Status(); got != StatusSaved {
		t.Errorf("save status = %q, want %q", got, StatusSaved)
	}
}
