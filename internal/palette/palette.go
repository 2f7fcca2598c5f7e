// Package palette assigns display colours to courses and events.
package palette

import (
	"strings"
	"unicode/utf16"

	"github.com/balkashynov/jess/internal/models"
)

// DefaultColors is the course colour cycle
var DefaultColors = []string{
	"#ef4444", "#f97316", "#f59e0b", "#84cc16", "#10b981",
	"#06b6d4", "#3b82f6", "#8b5cf6", "#d946ef", "#f43f5e",
}

// Palette maps course codes to colours. Overrides are keyed by lowercase
// course code and win over the hash.
type Palette struct {
	Colors    []string
	Overrides map[string]string
}

// Default returns the built-in palette without overrides
func Default() Palette {
	return Palette{Colors: DefaultColors}
}

// New builds a palette from configured overrides
func New(overrides map[string]string) Palette {
	p := Default()
	if len(overrides) > 0 {
		p.Overrides = make(map[string]string, len(overrides))
		for code, color := range overrides {
			p.Overrides[strings.ToLower(strings.TrimSpace(code))] = color
		}
	}
	return p
}

// ColorFor returns the same colour for the same course code every time
func (p Palette) ColorFor(code string) string {
	if c, ok := p.Overrides[strings.ToLower(code)]; ok && c != "" {
		return c
	}
	colors := p.Colors
	if len(colors) == 0 {
		colors = DefaultColors
	}
	h := Hash(code)
	if h < 0 {
		h = -h
	}
	return colors[h%int64(len(colors))]
}

// Hash is the string hash behind ColorFor: h = c + (h<<5) - h over UTF-16
// code units, where only the shift wraps to 32 bits.
func Hash(s string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(s)) {
		h = int64(c) + int64(int32(h)<<5) - h
	}
	return h
}

// Category colours
const (
	ColorStudy      = "#3b82f6"
	ColorWork       = "#f59e0b"
	ColorPersonal   = "#10b981"
	ColorOther      = "#6b7280"
	ColorAssignment = "#ef4444"
	ColorCompleted  = "#6b7280"
	ColorUnknown    = "#888888"
)

// CategoryColor returns the badge colour for an event. Assignment and
// completed events take their type colour whatever the category.
func CategoryColor(category models.Category, typ models.EventType) string {
	switch typ {
	case models.EventAssignment:
		return ColorAssignment
	case models.EventCompleted:
		return ColorCompleted
	}
	switch category {
	case models.CategoryStudy:
		return ColorStudy
	case models.CategoryWork:
		return ColorWork
	case models.CategoryPersonal:
		return ColorPersonal
	case models.CategoryOther:
		return ColorOther
	}
	return ColorUnknown
}
