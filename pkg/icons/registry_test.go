package icons

import (
	"image/color"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	registry := Default()

	capability, found := registry.Lookup("  Go ")
	if !found {
		t.Fatal("Expected Go to be registered")
	}
	if capability.Key != "go" {
		t.Errorf("Expected canonical key 'go', got '%s'", capability.Key)
	}

	if len(registry.Keys()) != len(defaultEntries) {
		t.Errorf("Expected %d keys, got %d", len(defaultEntries), len(registry.Keys()))
	}
}

func TestResolveFallback(t *testing.T) {
	registry := Default()

	capability := registry.Resolve("Quantum Widgets")
	if capability.Color != Fallback.Color {
		t.Errorf("Expected fallback colour, got %s", capability.Color)
	}
	if capability.Label != "Quantum Widgets" {
		t.Errorf("Expected label to carry the name, got %s", capability.Label)
	}
	if capability.Glyph != "QW" {
		t.Errorf("Expected glyph 'QW', got '%s'", capability.Glyph)
	}
	if capability.Key != "quantum widgets" {
		t.Errorf("Expected canonical key, got '%s'", capability.Key)
	}
}

func TestNewRegistryErrors(t *testing.T) {
	tests := []struct {
		name     string
		fallback Capability
		entries  []Capability
	}{
		{
			name:     "bad fallback colour",
			fallback: Capability{Color: "red"},
		},
		{
			name:     "duplicate key after canonicalisation",
			fallback: Fallback,
			entries: []Capability{
				{Key: "Go", Color: "#000000"},
				{Key: "go ", Color: "#ffffff"},
			},
		},
		{
			name:     "empty key",
			fallback: Fallback,
			entries:  []Capability{{Key: "  ", Color: "#000000"}},
		},
		{
			name:     "bad entry colour",
			fallback: Fallback,
			entries:  []Capability{{Key: "x", Color: "#zzzzzz"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.fallback, tt.entries...)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	got, err := ParseHex("#00add8")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := color.RGBA{R: 0x00, G: 0xad, B: 0xd8, A: 0xff}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	_, err = ParseHex("#abc")
	if err == nil {
		t.Error("Expected error for short colour")
	}
}
