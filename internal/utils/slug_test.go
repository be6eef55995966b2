package utils

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Wildlife Farm Permit", "wildlife-farm-permit"},
		{"  Chainsaw Permit (Renewal)  ", "chainsaw-permit-renewal"},
		{"---", ""},
		{"Tree Cutting & Hauling", "tree-cutting-hauling"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewExternalID(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	got := NewExternalID("Wildlife Farm Permit", now)
	want := fmt.Sprintf("wildlife-farm-permit-%d", now.UnixMilli())
	if got != want {
		t.Errorf("NewExternalID() = %q, want %q", got, want)
	}
}

func TestNewExternalID_EmptyNameFallsBack(t *testing.T) {
	got := NewExternalID("!!!", time.UnixMilli(1700000000000))
	if !strings.HasPrefix(got, "license-") {
		t.Errorf("NewExternalID() = %q, want license- prefix", got)
	}
}
