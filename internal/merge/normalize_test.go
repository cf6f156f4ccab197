package merge

import "testing"

func TestNormalizeArea(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Kitchen", "kitchen"},
		{"trims and folds", "  Living Room ", "living room"},
		{"collapses whitespace", "Bedroom \t 2", "bedroom 2"},
		{"strips control chars", "Bed\x07room 2", "bed room 2"},
		{"empty", "", AreaKeyNotAvailable},
		{"whitespace only", "   ", AreaKeyNotAvailable},
		{"sentinel", "Not Available", AreaKeyNotAvailable},
		{"sentinel lowercase", "not available", AreaKeyNotAvailable},
		{"sentinel mixed case", "NOT AVAILABLE", AreaKeyNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArea(tt.in); got != tt.want {
				t.Errorf("NormalizeArea(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeArea_SameKeyForCasingVariants(t *testing.T) {
	variants := []string{" Living Room ", "living room", "LIVING ROOM", "Living  Room"}
	want := NormalizeArea(variants[0])
	for _, v := range variants {
		if got := NormalizeArea(v); got != want {
			t.Errorf("NormalizeArea(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestNormalizeForMatch(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"folds and strips punctuation", "Visible Mould, near the sink!", "visible mould near the sink"},
		{"collapses whitespace", "damp   patch\ton wall", "damp patch on wall"},
		{"sentinel maps to empty", "Not Available", ""},
		{"empty stays empty", "   ", ""},
		{"control chars stripped", "no\x07damp", "no damp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeForMatch(tt.in); got != tt.want {
				t.Errorf("normalizeForMatch(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDisplayArea(t *testing.T) {
	if got := displayArea(" Living Room "); got != "Living Room" {
		t.Errorf("Expected trimmed display label, got %q", got)
	}
	if got := displayArea("not available"); got != "Not Available" {
		t.Errorf("Expected canonical sentinel, got %q", got)
	}
	if got := displayArea(""); got != "Not Available" {
		t.Errorf("Expected sentinel for empty label, got %q", got)
	}
}
