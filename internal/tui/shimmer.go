package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// ShimmerConfig holds configuration for shimmer effects
type ShimmerConfig struct {
	Enabled      bool          // animations on/off
	ReduceMotion bool          // static highlight instead of a sweep
	Interval     time.Duration // time between frames
	WidthRatio   float64       // highlight width relative to the text
	Frames       int           // frames per sweep
	PauseFrames  int           // frames to hold between sweeps
}

// ShimmerState sweeps a highlight across a label. It is advanced one frame
// per tick message so the animation stays deterministic under test.
type ShimmerState struct {
	Config    ShimmerConfig
	Active    bool
	Frame     int
	TrueColor bool
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:     os.Getenv("JESS_NO_ANIMATION") == "",
		Interval:    100 * time.Millisecond,
		WidthRatio:  0.25,
		Frames:      18,
		PauseFrames: 5,
	}
}

// NewShimmerState creates a new shimmer state
func NewShimmerState(config ShimmerConfig) *ShimmerState {
	if config.Frames <= 0 {
		config.Frames = 18
	}
	return &ShimmerState{
		Config:    config,
		Active:    config.Enabled && !config.ReduceMotion,
		TrueColor: os.Getenv("COLORTERM") == "truecolor",
	}
}

// Advance moves the sweep forward one frame, wrapping after the pause
func (s *ShimmerState) Advance() {
	if !s.Active {
		return
	}
	s.Frame = (s.Frame + 1) % (s.Config.Frames + s.Config.PauseFrames)
}

// Reset restarts the sweep (call when selection changes)
func (s *ShimmerState) Reset() {
	s.Frame = 0
}

// SetActive enables/disables shimmer
func (s *ShimmerState) SetActive(active bool) {
	s.Active = active && s.Config.Enabled && !s.Config.ReduceMotion
}

// ShouldTick returns true if the owning model should schedule frames
func (s *ShimmerState) ShouldTick() bool {
	return s.Active
}

// center returns the highlight position for a label of n runes; false
// while paused between sweeps
func (s *ShimmerState) center(n int) (float64, bool) {
	if s.Frame >= s.Config.Frames {
		return 0, false
	}
	pad := float64(n) * s.Config.WidthRatio
	span := float64(n) + 2*pad
	steps := float64(s.Config.Frames - 1)
	if steps < 1 {
		steps = 1
	}
	return -pad + span*float64(s.Frame)/steps, true
}

// Render draws text with the current highlight. Text longer than maxWidth
// is cut with an ellipsis first.
func (s *ShimmerState) Render(text string, maxWidth int) string {
	runes := []rune(text)
	if maxWidth > 3 && len(runes) > maxWidth {
		runes = append(runes[:maxWidth-3], []rune("...")...)
	}
	if len(runes) == 0 {
		return ""
	}
	if !s.Active {
		// static accent, ColorAccentBright
		return fmt.Sprintf("\033[38;2;147;197;253m%s\033[0m", string(runes))
	}

	c, sweeping := s.center(len(runes))
	sigma := math.Max(1, s.Config.WidthRatio*float64(len(runes))/2)

	var b strings.Builder
	for i, r := range runes {
		weight := 0.0
		if sweeping {
			dx := float64(i) - c
			weight = math.Exp(-(dx * dx) / (2 * sigma * sigma))
		}
		if s.TrueColor {
			// blend #9CA3AF toward #EFF6FF
			red := int(156 + (239-156)*weight)
			green := int(163 + (246-163)*weight)
			blue := int(175 + (255-175)*weight)
			fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c", red, green, blue, r)
		} else if weight > 0.5 {
			fmt.Fprintf(&b, "\033[38;5;153m%c", r)
		} else {
			fmt.Fprintf(&b, "\033[38;5;250m%c", r)
		}
	}
	b.WriteString("\033[0m")
	return b.String()
}
