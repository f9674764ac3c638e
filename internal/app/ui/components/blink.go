package components

import (
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// Frames shown by the request indicator, from idle to fully lit
var blinkFrames = []string{"·", "∙", "•", "●"}

const (
	blinkFPS = UITicksPerSecond

	blinkAngularFrequency = 6.0
	blinkDampingRatio     = 0.5

	// Ticks spent lit and dimmed per pulse
	blinkOnTicks  = 3
	blinkOffTicks = 4

	blinkPositionFull  = 1.0
	blinkPositionEmpty = 0.0
)

// Blink pulses while a request is in flight, driven by a spring so frames ease in and out
type Blink struct {
	spring    harmonica.Spring
	position  float64
	velocity  float64
	target    float64
	active    bool
	tickCount int
}

// NewBlink creates an idle indicator
func NewBlink() *Blink {
	return &Blink{
		spring: harmonica.NewSpring(harmonica.FPS(blinkFPS), blinkAngularFrequency, blinkDampingRatio),
	}
}

// Start begins pulsing, calling it while active keeps the current phase
func (b *Blink) Start() {
	if b.active {
		return
	}

	b.active = true
	b.tickCount = 0
	b.target = blinkPositionFull
}

// Stop resets the indicator to idle
func (b *Blink) Stop() {
	b.active = false
	b.position = blinkPositionEmpty
	b.velocity = blinkPositionEmpty
	b.target = blinkPositionEmpty
	b.tickCount = 0
}

// Update advances the animation by one UI tick
func (b *Blink) Update() {
	if !b.active {
		return
	}

	b.tickCount++

	switch b.target {
	case blinkPositionFull:
		if b.tickCount >= blinkOnTicks {
			b.target = blinkPositionEmpty
			b.tickCount = 0
		}
	default:
		if b.tickCount >= blinkOffTicks {
			b.target = blinkPositionFull
			b.tickCount = 0
		}
	}

	b.position, b.velocity = b.spring.Update(b.position, b.velocity, b.target)
}

// Frame maps the spring position onto the frame set
func (b *Blink) Frame() string {
	if !b.active {
		return ""
	}

	pos := b.position
	if pos < blinkPositionEmpty {
		pos = blinkPositionEmpty
	}

	if pos > blinkPositionFull {
		pos = blinkPositionFull
	}

	idx := int(pos * float64(len(blinkFrames)-1))

	return blinkFrames[idx]
}

// Render returns the styled frame, empty while idle
func (b *Blink) Render(style lipgloss.Style) string {
	frame := b.Frame()
	if frame == "" {
		return ""
	}

	return style.Render(frame)
}

// IsActive reports whether the indicator is pulsing
func (b *Blink) IsActive() bool {
	return b.active
}
