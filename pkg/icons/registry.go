// Package icons resolves display capabilities (glyph, colour, label) for
// technologies, categories and link types from one lookup table.
package icons

import (
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Key identifies a capability. Keys are canonical: trimmed and lower-case.
type Key string

// NewKey canonicalises s into a Key.
func NewKey(s string) (key Key) {
	key = Key(strings.ToLower(strings.TrimSpace(s)))
	return key
}

// Capability is everything a renderer needs to draw one kind of thing.
type Capability struct {
	Key   Key    `json:"key"`
	Label string `json:"label"`
	Glyph string `json:"glyph"` // short text drawn inside a node
	Color string `json:"color"` // #rrggbb
}

// RGBA parses the capability colour.
func (c Capability) RGBA() (rgba color.RGBA, err error) {
	rgba, err = ParseHex(c.Color)
	return rgba, err
}

// Registry is an immutable Key -> Capability table.
type Registry struct {
	entries  map[Key]Capability
	fallback Capability
}

// NewRegistry builds a registry. Duplicate keys and malformed colours are errors.
func NewRegistry(fallback Capability, entries ...Capability) (registry *Registry, err error) {
	_, err = ParseHex(fallback.Color)
	if err != nil {
		err = errors.Wrap(err, "invalid fallback colour")
		return registry, err
	}

	table := make(map[Key]Capability, len(entries))
	for _, e := range entries {
		key := NewKey(string(e.Key))
		if key == "" {
			err = errors.Errorf("capability %q has empty key", e.Label)
			return registry, err
		}
		if _, exists := table[key]; exists {
			err = errors.Errorf("duplicate capability key: %s", key)
			return registry, err
		}
		_, err = ParseHex(e.Color)
		if err != nil {
			err = errors.Wrapf(err, "capability %s", key)
			return registry, err
		}
		e.Key = key
		table[key] = e
	}

	registry = &Registry{entries: table, fallback: fallback}
	return registry, err
}

// Lookup returns the capability for name and whether it was registered.
func (r *Registry) Lookup(name string) (capability Capability, found bool) {
	capability, found = r.entries[NewKey(name)]
	return capability, found
}

// Resolve returns the capability for name, or the fallback labelled with name.
func (r *Registry) Resolve(name string) (capability Capability) {
	capability, found := r.Lookup(name)
	if found {
		return capability
	}

	capability = r.fallback
	capability.Key = NewKey(name)
	capability.Label = name
	if capability.Glyph == "" {
		capability.Glyph = initials(name)
	}
	return capability
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() (keys []Key) {
	keys = make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ParseHex parses a #rrggbb colour.
func ParseHex(hex string) (rgba color.RGBA, err error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		err = errors.Errorf("colour %q is not #rrggbb", hex)
		return rgba, err
	}

	var v uint64
	v, err = strconv.ParseUint(h, 16, 32)
	if err != nil {
		err = errors.Wrapf(err, "colour %q is not hexadecimal", hex)
		return rgba, err
	}

	rgba = color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	return rgba, err
}

func initials(name string) (glyph string) {
	count := 0
	for _, word := range strings.Fields(name) {
		first := []rune(word)[0]
		glyph += strings.ToUpper(string(first))
		count++
		if count == 2 {
			break
		}
	}
	return glyph
}
