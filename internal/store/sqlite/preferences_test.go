package sqlite

import (
	"context"
	"testing"
)

func TestPreferenceUnsetReturnsEmpty(t *testing.T) {
	s := newTestStore(t)

	v, err := s.GetPreference(context.Background(), "never_set")
	if err != nil {
		t.Fatalf("get preference: %v", err)
	}
	if v != "" {
		t.Errorf("unset preference = %q, want empty", v)
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetPreference(ctx, "genres_last_update", "1714828800000"); err != nil {
		t.Fatalf("set preference: %v", err)
	}

	v, err := s.GetPreference(ctx, "genres_last_update")
	if err != nil {
		t.Fatalf("get preference: %v", err)
	}
	if v != "1714828800000" {
		t.Errorf("value = %q", v)
	}

	// Replacing overwrites.
	if err := s.SetPreference(ctx, "genres_last_update", "1714915200000"); err != nil {
		t.Fatalf("set preference: %v", err)
	}
	v, _ = s.GetPreference(ctx, "genres_last_update")
	if v != "1714915200000" {
		t.Errorf("value after replace = %q", v)
	}
}
