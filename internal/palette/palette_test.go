package palette

import (
	"testing"

	"github.com/balkashynov/jess/internal/models"
)

func TestHash(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"C", 67},
		{"CS", 2160},
		{"CS101", 64397186},
	}
	for _, tt := range tests {
		if got := Hash(tt.in); got != tt.want {
			t.Errorf("Hash(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestColorForIsDeterministic(t *testing.T) {
	p := Default()

	if got := p.ColorFor("CS101"); got != "#3b82f6" {
		t.Errorf("CS101 = %s", got)
	}
	if got := p.ColorFor(""); got != DefaultColors[0] {
		t.Errorf("empty code = %s", got)
	}

	codes := []string{"CS101", "MATH2010A", "BIO-220", "ENGLISH LITERATURE AND COMPOSITION 301", "日本語101"}
	for _, code := range codes {
		first := p.ColorFor(code)
		if p.ColorFor(code) != first || Default().ColorFor(code) != first {
			t.Errorf("%s not stable", code)
		}
		found := false
		for _, c := range DefaultColors {
			if c == first {
				found = true
			}
		}
		if !found {
			t.Errorf("%s got colour %s outside palette", code, first)
		}
	}
}

func TestOverrides(t *testing.T) {
	p := New(map[string]string{"CS101": "#000000", "ma201": ""})

	if got := p.ColorFor("cs101"); got != "#000000" {
		t.Errorf("override = %s", got)
	}
	if got := p.ColorFor("MA201"); got != Default().ColorFor("MA201") {
		t.Errorf("empty override should fall back, got %s", got)
	}

	small := Palette{Colors: []string{"red", "blue"}}
	if got := small.ColorFor("CS101"); got != "red" {
		t.Errorf("two-colour palette = %s", got)
	}
}

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		category models.Category
		typ      models.EventType
		want     string
	}{
		{models.CategoryStudy, models.EventFuture, ColorStudy},
		{models.CategoryWork, models.EventFuture, ColorWork},
		{models.CategoryPersonal, "", ColorPersonal},
		{models.CategoryOther, models.EventFuture, ColorOther},
		{models.CategoryWork, models.EventAssignment, ColorAssignment},
		{models.CategoryStudy, models.EventCompleted, ColorCompleted},
		{"mystery", models.EventFuture, ColorUnknown},
	}
	for _, tt := range tests {
		if got := CategoryColor(tt.category, tt.typ); got != tt.want {
			t.Errorf("CategoryColor(%s, %s) = %s, want %s", tt.category, tt.typ, got, tt.want)
		}
	}
}
