package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

var (
	ErrNotIdle        = errors.New("round already started")
	ErrFieldTooNarrow = errors.New("field too narrow")
)

// ScoreReporter receives the final score of every finished round.
//
// ReportScore is called from inside a frame and must return immediately: any
// network work belongs in the background, and its failures are the
// reporter's to log. The loop never learns whether a report succeeded.
type ScoreReporter interface {
	ReportScore(player string, score int)
}

// Loop drives one player's rounds. It is not safe for concurrent use; input
// and frames are expected to come from the same goroutine.
type Loop struct {
	state    State
	width    float64
	player   string
	topScore int
	newTop   bool

	reporter ScoreReporter
	rng      *rand.Rand
	log      *slog.Logger
	last     time.Time
}

type Option func(*Loop)

func WithRand(rng *rand.Rand) Option {
	return func(l *Loop) { l.rng = rng }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.log = logger }
}

// WithTopScore seeds the personal best carried over from an earlier session.
func WithTopScore(score int) Option {
	return func(l *Loop) { l.topScore = score }
}

// NewLoop validates the player name and prepares an idle round. reporter may
// be nil, in which case finished rounds are only kept locally.
func NewLoop(width float64, player string, reporter ScoreReporter, opts ...Option) (*Loop, error) {
	name, err := ValidatePlayerName(player)
	if err != nil {
		return nil, err
	}
	if width <= 2*SpawnMargin {
		return nil, fmt.Errorf("%w: width %.0f", ErrFieldTooNarrow, width)
	}

	l := &Loop{
		width:    width,
		player:   name,
		reporter: reporter,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rng == nil {
		l.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if l.log == nil {
		l.log = slog.Default()
	}

	l.Reset()
	return l, nil
}

func (l *Loop) State() *State { return &l.state }
func (l *Loop) Player() string { return l.player }
func (l *Loop) TopScore() int { return l.topScore }
func (l *Loop) Width() float64 { return l.width }
func (l *Loop) Over() bool { return l.state.Over }
func (l *Loop) Phase() Phase { return l.state.Phase }

// Reset discards the current round and spawns a new idle one.
func (l *Loop) Reset() {
	Reset(&l.state, l.width, l.rng)
	l.newTop = false
}

// Start drops the hook. Only an idle round can be started.
func (l *Loop) Start() error {
	if l.state.Phase != PhaseIdle {
		return ErrNotIdle
	}
	l.state.Phase = PhaseDropping
	return nil
}

// SetTarget steers the hook toward world x. Ignored unless the hook is in
// the water.
func (l *Loop) SetTarget(x float64) {
	s := &l.state
	if s.Over || (s.Phase != PhaseDropping && s.Phase != PhaseRising) {
		return
	}
	lo, hi := HookEdgeMargin, s.Width-HookEdgeMargin
	s.TargetX = min(max(x, lo), hi)
}

// Nudge moves the steering target by dx.
func (l *Loop) Nudge(dx float64) {
	l.SetTarget(l.state.TargetX + dx)
}

// Frame advances the round by the wall-clock time since the previous frame
// and reports whether the round ended during it.
func (l *Loop) Frame(now time.Time) bool {
	elapsed := MaxFrame
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now
	return l.Advance(FrameDelta(elapsed))
}

// Advance steps the round by dt nominal ticks.
func (l *Loop) Advance(dt float64) bool {
	if !Step(&l.state, dt) {
		return false
	}
	l.finish()
	return true
}

func (l *Loop) finish() {
	score := l.state.Score
	if score > l.topScore {
		l.topScore = score
		l.newTop = true
	}
	l.log.Info("round finished",
		"player", l.player,
		"score", score,
		"caught", len(l.state.Collected),
		"top_score", l.topScore,
	)
	if l.reporter != nil {
		l.reporter.ReportScore(l.player, score)
	}
}

// Results summarises the finished (or current) round.
func (l *Loop) Results() Results {
	return Results{
		Player:   l.player,
		Score:    l.state.Score,
		TopScore: l.topScore,
		NewTop:   l.newTop,
		Catches:  Breakdown(l.state.Collected),
	}
}
