package render

import "time"

// Phase is the state of a card transition
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFadingOut
	PhaseFadingIn
)

func (p Phase) String() string {
	switch p {
	case PhaseFadingOut:
		return "fading-out"
	case PhaseFadingIn:
		return "fading-in"
	default:
		return "idle"
	}
}

// Step is one observable transition state. Delay is how long to wait before
// calling Advance with Generation.
type Step struct {
	Generation uint64
	Phase      Phase
	Opacity    float64
	Delay      time.Duration
}

// Transition animates the card from one fact to the next:
// idle → fading-out (opacity 0) → fading-in (content swapped) → idle (opacity 1).
// Starting a new transition mid-flight bumps the generation, so callbacks
// scheduled for the old one are ignored.
type Transition struct {
	FadeOut time.Duration
	FadeIn  time.Duration

	generation uint64
	phase      Phase
	opacity    float64
	shown      DisplayFields
	pending    DisplayFields
	hasShown   bool
}

// NewTransition creates an idle, fully opaque transition with nothing shown
func NewTransition(fadeOut, fadeIn time.Duration) *Transition {
	return &Transition{
		FadeOut: fadeOut,
		FadeIn:  fadeIn,
		opacity: 1,
	}
}

// Start begins fading out toward next
func (t *Transition) Start(next DisplayFields) Step {
	t.generation++
	t.phase = PhaseFadingOut
	t.opacity = 0
	t.pending = next
	return t.step(t.FadeOut)
}

// Advance moves to the following phase if gen is current. It returns false
// for stale generations and when already idle.
func (t *Transition) Advance(gen uint64) (Step, bool) {
	if gen != t.generation {
		return Step{}, false
	}

	switch t.phase {
	case PhaseFadingOut:
		t.shown = t.pending
		t.hasShown = true
		t.pending = DisplayFields{}
		t.phase = PhaseFadingIn
		return t.step(t.FadeIn), true
	case PhaseFadingIn:
		t.phase = PhaseIdle
		t.opacity = 1
		return t.step(0), true
	default:
		return Step{}, false
	}
}

// Show installs fields immediately, cancelling any transition in flight
func (t *Transition) Show(fields DisplayFields) {
	t.generation++
	t.phase = PhaseIdle
	t.opacity = 1
	t.shown = fields
	t.hasShown = true
	t.pending = DisplayFields{}
}

// Shown returns the fields currently on the card
func (t *Transition) Shown() (DisplayFields, bool) {
	return t.shown, t.hasShown
}

// Phase returns the current phase
func (t *Transition) Phase() Phase {
	return t.phase
}

// Opacity returns 0 while fading and 1 when idle
func (t *Transition) Opacity() float64 {
	return t.opacity
}

// Generation returns the current generation
func (t *Transition) Generation() uint64 {
	return t.generation
}

func (t *Transition) step(delay time.Duration) Step {
	return Step{
		Generation: t.generation,
		Phase:      t.phase,
		Opacity:    t.opacity,
		Delay:      delay,
	}
}

// Scheduler runs fn after d. Implementations decide which goroutine fn runs
// on; the Fader assumes it is the same one that calls Fader methods.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Fader drives a Transition through its phases using a Scheduler
type Fader struct {
	transition *Transition
	scheduler  Scheduler
	onStep     func(Step)
}

// NewFader creates a Fader. onStep, if set, observes every step.
func NewFader(transition *Transition, scheduler Scheduler, onStep func(Step)) *Fader {
	return &Fader{
		transition: transition,
		scheduler:  scheduler,
		onStep:     onStep,
	}
}

// Transition returns the underlying state machine
func (f *Fader) Transition() *Transition {
	return f.transition
}

// Show animates the card to next
func (f *Fader) Show(next DisplayFields) {
	step := f.transition.Start(next)
	f.notify(step)
	f.schedule(step)
}

func (f *Fader) schedule(step Step) {
	gen := step.Generation
	f.scheduler.AfterFunc(step.Delay, func() {
		next, ok := f.transition.Advance(gen)
		if !ok {
			return
		}
		f.notify(next)
		if next.Phase != PhaseIdle {
			f.schedule(next)
		}
	})
}

func (f *Fader) notify(step Step) {
	if f.onStep != nil {
		f.onStep(step)
	}
}
