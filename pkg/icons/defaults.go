package icons

import (
	"github.com/pkg/errors"
)

// Fallback is used for anything not in the default table.
//
//nolint:gochecknoglobals // Capability table
var Fallback = Capability{Label: "Other", Color: "#94a3b8"}

// defaultEntries are the built-in capabilities: node categories, project
// categories, statuses and well-known technologies.
//
//nolint:gochecknoglobals // Capability table
var defaultEntries = []Capability{
	// Ecosystem categories
	{Key: "languages", Label: "Languages", Glyph: "</>", Color: "#6366f1"},
	{Key: "machine learning", Label: "Machine Learning", Glyph: "ML", Color: "#ec4899"},
	{Key: "infrastructure", Label: "Infrastructure", Glyph: "IN", Color: "#0ea5e9"},
	{Key: "data", Label: "Data", Glyph: "DB", Color: "#22c55e"},

	// Skill categories
	{Key: "platform", Label: "Platform", Glyph: "PL", Color: "#0891b2"},
	{Key: "data engineering", Label: "Data Engineering", Glyph: "DE", Color: "#16a34a"},
	{Key: "software", Label: "Software", Glyph: "SW", Color: "#7c3aed"},

	// Project categories
	{Key: "artificial intelligence & machine learning", Label: "AI & ML", Glyph: "AI", Color: "#db2777"},
	{Key: "data engineering & analytics", Label: "Data & Analytics", Glyph: "DA", Color: "#15803d"},
	{Key: "cloud & infrastructure", Label: "Cloud", Glyph: "CI", Color: "#0369a1"},
	{Key: "full-stack development", Label: "Full-Stack", Glyph: "FS", Color: "#ea580c"},

	// Statuses
	{Key: "active", Label: "Active", Glyph: "●", Color: "#16a34a"},
	{Key: "learning", Label: "Learning", Glyph: "◐", Color: "#f59e0b"},
	{Key: "planned", Label: "Planned", Glyph: "○", Color: "#64748b"},

	// Technologies
	{Key: "go", Label: "Go", Glyph: "Go", Color: "#00add8"},
	{Key: "python", Label: "Python", Glyph: "Py", Color: "#3776ab"},
	{Key: "typescript", Label: "TypeScript", Glyph: "TS", Color: "#3178c6"},
	{Key: "rust", Label: "Rust", Glyph: "Rs", Color: "#b7410e"},
	{Key: "kubernetes", Label: "Kubernetes", Glyph: "K8", Color: "#326ce5"},
	{Key: "terraform", Label: "Terraform", Glyph: "TF", Color: "#7b42bc"},
	{Key: "aws", Label: "AWS", Glyph: "AW", Color: "#ff9900"},
	{Key: "postgresql", Label: "PostgreSQL", Glyph: "PG", Color: "#336791"},
	{Key: "kafka", Label: "Kafka", Glyph: "Kf", Color: "#231f20"},
	{Key: "pytorch", Label: "PyTorch", Glyph: "PT", Color: "#ee4c2c"},
}

// Default builds the built-in registry. It is resolved once at startup.
func Default() (registry *Registry) {
	registry, err := NewRegistry(Fallback, defaultEntries...)
	if err != nil {
		// The table is static; a failure here is a programming error.
		panic(errors.Wrap(err, "invalid built-in capability table"))
	}
	return registry
}
