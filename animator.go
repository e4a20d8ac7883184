package canopy

import (
	"context"
	"fmt"
	"math"

	"github.com/looplab/fsm"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimatorState is the lifecycle state of an Animator.
type AnimatorState string

const (
	// StatePending: the delay has not yet elapsed; nothing is written.
	StatePending AnimatorState = "pending"
	// StateActive: phase accumulates and the property is written every tick.
	StateActive AnimatorState = "active"
	// StateFinished: the duration is exhausted. Terminal unless restarted.
	StateFinished AnimatorState = "finished"
)

const (
	eventActivate = "activate"
	eventFinish   = "finish"
	eventRestart  = "restart"
)

var animatorEvents = fsm.Events{
	{Name: eventActivate, Src: []string{string(StatePending)}, Dst: string(StateActive)},
	{Name: eventFinish, Src: []string{string(StatePending), string(StateActive)}, Dst: string(StateFinished)},
	{Name: eventRestart, Src: []string{string(StateActive), string(StateFinished)}, Dst: string(StatePending)},
}

// Unbounded is the DurationPeriods value for an animator that never finishes.
const Unbounded = -1

// AnimatorConfig holds the waveform parameters of an animator.
type AnimatorConfig struct {
	Wave      WaveKind
	Offset    float64
	Amplitude float64
	// Speed is in periods per second. Zero freezes the phase.
	Speed float64
	// StartPeriods is added to the phase before sampling.
	StartPeriods float64
	// DurationPeriods is how many periods the animator runs. Negative means
	// unbounded.
	DurationPeriods float64
	// Delay is the number of seconds spent pending before the phase starts.
	Delay float64
	// Reset writes Offset back on finish instead of leaving the last value.
	Reset bool

	// Ease, when set, replaces the waveform: the value eases from Offset to
	// Offset+Amplitude over the first period and holds after it.
	Ease ease.TweenFunc
	// Seed for WaveRandom. Zero picks a random seed.
	Seed uint64
}

// OscillateConfig returns an unbounded sine oscillation around offset.
func OscillateConfig(offset, amplitude, periodsPerSecond float64) AnimatorConfig {
	return AnimatorConfig{
		Wave:            WaveSine,
		Offset:          offset,
		Amplitude:       amplitude,
		Speed:           periodsPerSecond,
		DurationPeriods: Unbounded,
	}
}

// RampConfig returns a one-shot linear ramp from `from` to `to` over seconds.
func RampConfig(from, to, seconds float64) AnimatorConfig {
	speed := 0.0
	if seconds > 0 {
		speed = 1 / seconds
	}
	return AnimatorConfig{
		Wave:            WaveLinear,
		Offset:          from,
		Amplitude:       to - from,
		Speed:           speed,
		DurationPeriods: 1,
	}
}

// Animator is a time-driven channel that writes one numeric property of its
// target node. Animators attached to a node through Animate or Queue are
// updated by the node; free animators are updated by Scene.AddAnimator or by
// calling Update directly.
type Animator struct {
	AnimatorConfig

	name   string
	target *Node
	kind   PropertyKind
	queued bool

	state   *fsm.FSM
	waited  float64 // seconds spent pending, capped at Delay
	elapsed float64 // seconds spent active
	hold    *RandomHold
	tween   *gween.Tween
}

// NewAnimator creates an animator for kind on target. It is not attached to
// the node; use Node.Animate or Node.Queue for node-managed animators.
func NewAnimator(target *Node, kind PropertyKind, cfg AnimatorConfig) (*Animator, error) {
	if target == nil || target.disposed {
		return nil, fmt.Errorf("new animator for %v: %w", kind, ErrAnimatorTargetInvalid)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("new animator on %q: %w", target.name, ErrPropertyNotFound)
	}
	a := &Animator{
		AnimatorConfig: cfg,
		target:         target,
		kind:           kind,
	}
	a.name = fmt.Sprintf("%s/%v", target.name, kind)
	a.state = fsm.NewFSM(string(a.initialState()), animatorEvents, fsm.Callbacks{})
	a.prepare()
	return a, nil
}

func (a *Animator) initialState() AnimatorState {
	if a.Delay > 0 {
		return StatePending
	}
	return StateActive
}

// prepare rebuilds per-run helpers from the config.
func (a *Animator) prepare() {
	a.hold = nil
	a.tween = nil
	if a.Ease != nil {
		a.tween = gween.New(float32(a.Offset), float32(a.Offset+a.Amplitude), 1, a.Ease)
	} else if a.Wave == WaveRandom {
		a.hold = NewRandomHold(a.Seed)
	}
}

// Name returns the animator's name. Node-managed animators get a generated
// name of the form "node/kind#seq".
func (a *Animator) Name() string { return a.name }

// Target returns the node the animator writes to, or nil once detached.
func (a *Animator) Target() *Node { return a.target }

// Kind returns the property the animator writes.
func (a *Animator) Kind() PropertyKind { return a.kind }

// Queued reports whether the animator was attached with Queue.
func (a *Animator) Queued() bool { return a.queued }

// State returns the current lifecycle state.
func (a *Animator) State() AnimatorState { return AnimatorState(a.state.Current()) }

// IsAnimated reports whether the animator is pending or active.
func (a *Animator) IsAnimated() bool {
	return !a.state.Is(string(StateFinished))
}

// IsFinished reports whether the animator reached its duration.
func (a *Animator) IsFinished() bool {
	return a.state.Is(string(StateFinished))
}

// Phase returns the current phase in periods, including StartPeriods.
func (a *Animator) Phase() float64 {
	return a.StartPeriods + a.elapsed*a.Speed
}

// Value samples the animator at its current phase without writing it.
func (a *Animator) Value() float64 {
	return a.sample(a.Phase())
}

// Restart returns the animator to its initial state: delay and phase start
// over from zero.
func (a *Animator) Restart() error {
	if a.state.Can(eventRestart) {
		if err := a.state.Event(context.Background(), eventRestart); err != nil {
			return fmt.Errorf("restart animator %q: %w", a.name, err)
		}
	}
	a.waited = 0
	a.elapsed = 0
	a.prepare()
	if a.Delay <= 0 {
		return a.transition(eventActivate)
	}
	return nil
}

// Update advances the animator by dt seconds and writes its property while
// active. It returns ErrAnimatorTargetInvalid once the target is gone.
func (a *Animator) Update(dt float64) error {
	if a.target == nil || a.target.disposed {
		return fmt.Errorf("update animator %q: %w", a.name, ErrAnimatorTargetInvalid)
	}
	switch a.State() {
	case StateFinished:
		return nil
	case StatePending:
		a.waited += dt
		if a.waited < a.Delay {
			return nil
		}
		// The part of dt past the delay counts as active time.
		dt = a.waited - a.Delay
		a.waited = a.Delay
		if err := a.transition(eventActivate); err != nil {
			return err
		}
	}
	return a.advance(dt)
}

func (a *Animator) advance(dt float64) error {
	a.elapsed += dt
	periods := a.elapsed * a.Speed
	if a.DurationPeriods >= 0 && periods >= a.DurationPeriods {
		v := a.Offset
		if !a.Reset {
			v = a.sample(a.StartPeriods + a.DurationPeriods)
		}
		if err := a.target.SetProperty(a.kind, v); err != nil {
			return err
		}
		return a.transition(eventFinish)
	}
	return a.target.SetProperty(a.kind, a.sample(a.StartPeriods+periods))
}

func (a *Animator) sample(phase float64) float64 {
	switch {
	case a.tween != nil:
		v, _ := a.tween.Set(float32(phase))
		return float64(v)
	case a.hold != nil:
		return a.hold.Sample(phase, a.Amplitude, a.Offset)
	}
	return Sample(a.Wave, phase, a.Amplitude, a.Offset)
}

func (a *Animator) transition(event string) error {
	if !a.state.Can(event) {
		return nil
	}
	if err := a.state.Event(context.Background(), event); err != nil {
		return fmt.Errorf("animator %q %s: %w", a.name, event, err)
	}
	return nil
}

// remainingSeconds is the time until the animator finishes: remaining delay
// plus remaining periods at the current speed. Unbounded or frozen animators
// return +Inf.
func (a *Animator) remainingSeconds() float64 {
	if a.IsFinished() {
		return 0
	}
	if a.DurationPeriods < 0 {
		return math.Inf(1)
	}
	delayLeft := max(a.Delay-a.waited, 0)
	periodsLeft := a.DurationPeriods - a.elapsed*a.Speed
	if periodsLeft <= 0 {
		return delayLeft
	}
	if a.Speed <= 0 {
		return math.Inf(1)
	}
	return delayLeft + periodsLeft/a.Speed
}

// detach severs the animator from its node. Further updates report
// ErrAnimatorTargetInvalid.
func (a *Animator) detach() {
	a.target = nil
}
