package render

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"
)

// Effect identifies a transient animation.
type Effect int

const (
	EffectHighlight Effect = iota
	EffectFadeIn
	EffectSlideUp
)

func (e Effect) String() string {
	switch e {
	case EffectHighlight:
		return "highlight"
	case EffectFadeIn:
		return "fade-in"
	case EffectSlideUp:
		return "slide-up"
	default:
		return "unknown"
	}
}

const (
	AccentColor  = "#0CB0FF"
	NeutralColor = "#FFFFFF"

	HighlightDuration = 2 * time.Second
	FadeInDuration    = 300 * time.Millisecond
	SlideUpDuration   = 400 * time.Millisecond

	frameRate = 30
)

// Animation describes a transient effect applied to a node. OnDone runs once,
// from Tree.Tick, when the effect completes. A superseded animation never
// calls its OnDone.
type Animation struct {
	Effect   Effect
	From     string
	To       string
	Duration time.Duration
	OnDone   func()
}

// Highlight jumps the background to the accent color and eases it back to
// neutral.
func Highlight() Animation {
	return Animation{Effect: EffectHighlight, From: AccentColor, To: NeutralColor, Duration: HighlightDuration}
}

func FadeIn() Animation {
	return Animation{Effect: EffectFadeIn, Duration: FadeInDuration}
}

// SlideUp is the exit transition; done runs after the node has collapsed.
func SlideUp(done func()) Animation {
	return Animation{Effect: EffectSlideUp, Duration: SlideUpDuration, OnDone: done}
}

type animation struct {
	Animation
	start  time.Time
	last   time.Time
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newAnimation(a Animation, now time.Time) *animation {
	pos, target := 1.0, 0.0
	if a.Effect == EffectFadeIn {
		pos, target = 0, 1
	}
	// Critically damped so the level never overshoots past the target.
	seconds := a.Duration.Seconds()
	if seconds <= 0 {
		seconds = 1
	}
	freq := 8.0 / seconds
	return &animation{
		Animation: a,
		start:     now,
		last:      now,
		spring:    harmonica.NewSpring(harmonica.FPS(frameRate), freq, 1.0),
		pos:       pos,
		target:    target,
	}
}

// step advances the spring to now and reports whether the effect finished.
func (a *animation) step(now time.Time) bool {
	if !now.After(a.last) {
		return now.Sub(a.start) >= a.Duration
	}
	frame := time.Second / frameRate
	frames := int(now.Sub(a.last) / frame)
	for i := 0; i < frames; i++ {
		a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.target)
	}
	a.last = a.last.Add(time.Duration(frames) * frame)
	if now.Sub(a.start) >= a.Duration {
		a.pos = a.target
		return true
	}
	return false
}

func (a *animation) level() float64 {
	return math.Max(0, math.Min(1, a.pos))
}

func (a *animation) color() (string, bool) {
	if a.Effect != EffectHighlight {
		return "", false
	}
	from, err := colorful.Hex(a.From)
	if err != nil {
		return "", false
	}
	to, err := colorful.Hex(a.To)
	if err != nil {
		return "", false
	}
	switch level := a.level(); {
	case level >= 1:
		return from.Hex(), true
	case level <= 0:
		return to.Hex(), true
	default:
		return from.BlendLab(to, 1-level).Clamped().Hex(), true
	}
}

// AnimationState is a read-only snapshot of a node's in-flight animation.
type AnimationState struct {
	Effect Effect
	// Level is 1 at full effect strength and 0 when settled.
	Level float64
	// Color is the blended background for highlight effects.
	Color string
}

// Animation reports the in-flight animation on the node, if any.
func (n *Node) Animation() (AnimationState, bool) {
	if n.anim == nil {
		return AnimationState{}, false
	}
	color, _ := n.anim.color()
	return AnimationState{Effect: n.anim.Effect, Level: n.anim.level(), Color: color}, true
}
