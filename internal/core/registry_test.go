package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestUnitNameFor(t *testing.T) {
	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{id: "/src/components/Button.vue", want: "Button.vue", wantOK: true},
		{id: "/src/Button.vue?vue&type=style&index=0&lang.css", want: "Button.vue", wantOK: true},
		{id: "/src/Button.vue.js", want: "Button.vue", wantOK: true},
		{id: `C:\project\src\Card.vue.css`, want: "Card.vue", wantOK: true},
		{id: "/src/main.ts", wantOK: false},
		{id: "Button.vue", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := UnitNameFor(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRegistryEnsureIssuesOncePerUnit(t *testing.T) {
	r := NewRegistry()
	calls := 0
	issue := func() (string, error) {
		calls++
		return "abcdefgh", nil
	}

	first, err := r.Ensure("Button.vue", issue)
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	second, err := r.Ensure("Button.vue", issue)
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("Expected 1 issued id, got %d", calls)
	}
	if first.PlaceholderID != "_s-abcdefgh" || second.PlaceholderID != first.PlaceholderID {
		t.Errorf("Expected stable id _s-abcdefgh, got %q and %q", first.PlaceholderID, second.PlaceholderID)
	}
}

func TestRegistryEnsurePropagatesIssueError(t *testing.T) {
	r := NewRegistry()

	_, err := r.Ensure("Button.vue", func() (string, error) {
		return "", ErrTokenExhausted
	})
	if !errors.Is(err, ErrTokenExhausted) {
		t.Errorf("Expected ErrTokenExhausted, got %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Expected no record, got %d", r.Len())
	}
}

func TestRegistryMarkerBuiltOnce(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Ensure("Card.vue", func() (string, error) { return "12345678", nil }); err != nil {
		t.Fatal(err)
	}

	marker := r.Marker("Card.vue")
	if marker != "console.warn('__###_s-12345678###__')" {
		t.Errorf("Unexpected marker %q", marker)
	}
	if again := r.Marker("Card.vue"); again != marker {
		t.Errorf("Expected marker reuse, got %q", again)
	}
	if r.Marker("Missing.vue") != "" {
		t.Error("Expected empty marker for unknown unit")
	}
}

func TestRegistryRecordsSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"Zeta.vue", "Alpha.vue", "Mid.vue"} {
		if _, err := r.Ensure(name, func() (string, error) { return strings.ToLower(name[:4]) + "0000", nil }); err != nil {
			t.Fatal(err)
		}
	}
	r.SetStyle("Mid.vue", ".m{}")

	want := []ExtractionRecord{
		{UnitName: "Alpha.vue", PlaceholderID: "_s-alph0000"},
		{UnitName: "Mid.vue", PlaceholderID: "_s-mid.0000", StyleText: ".m{}"},
		{UnitName: "Zeta.vue", PlaceholderID: "_s-zeta0000"},
	}
	if diff := cmp.Diff(want, r.Records(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}
}
