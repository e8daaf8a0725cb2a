// Package rounds tracks a position in an ordered list of rounds and notifies
// listeners when a round begins or ends.
//
// A Sequencer never schedules anything on its own. Every transition is a
// direct call, and every notification runs on the calling goroutine before
// the call returns. A Sequencer is not safe for concurrent use.
package rounds

import (
	"errors"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// ErrNoRounds is the panic value when a round is requested from an empty
// sequence.
var ErrNoRounds = errors.New("rounds: sequence has no rounds")

// Label receives the display text for the current round.
type Label interface {
	SetText(text string)
}

// LabelFunc adapts a function to the Label interface.
type LabelFunc func(text string)

func (f LabelFunc) SetText(text string) {
	f(text)
}

type Option func(*config)

type config struct {
	label  Label
	prefix string
	logger log.FieldLogger
}

func WithLabel(l Label) Option {
	return func(c *config) { c.label = l }
}

func WithLabelPrefix(prefix string) Option {
	return func(c *config) { c.prefix = prefix }
}

func WithLogger(logger log.FieldLogger) Option {
	return func(c *config) { c.logger = logger }
}

type Sequencer[R any] struct {
	rounds []R
	index  int
	active bool

	label     Label
	prefix    string
	lastLabel string
	logger    log.FieldLogger

	onRoundBegin    Event[R]
	onRoundEnd      Event[R]
	onFinalRoundEnd Signal
}

// New returns a sequencer positioned on the first of rs. The slice is copied.
func New[R any](rs []R, opts ...Option) *Sequencer[R] {
	cfg := config{logger: log.StandardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Sequencer[R]{
		rounds: append([]R(nil), rs...),
		label:  cfg.label,
		prefix: cfg.prefix,
		logger: cfg.logger,
	}
}

// OnRoundBegin fires with the current round every time a round begins.
func (s *Sequencer[R]) OnRoundBegin() *Event[R] {
	return &s.onRoundBegin
}

// OnRoundEnd fires with the current round when any round but the last ends.
func (s *Sequencer[R]) OnRoundEnd() *Event[R] {
	return &s.onRoundEnd
}

// OnFinalRoundEnd fires when the last round ends.
func (s *Sequencer[R]) OnFinalRoundEnd() *Signal {
	return &s.onFinalRoundEnd
}

// BeginRound announces the current round again without moving.
func (s *Sequencer[R]) BeginRound() {
	current := s.Current()
	s.active = true
	s.updateLabel()

	s.logger.WithFields(log.Fields{
		"index": s.index,
		"label": s.lastLabel,
	}).Debug("round begin")

	s.onRoundBegin.Emit(current)
}

// BeginRoundAt moves to index i, clamped into the sequence, and begins that
// round.
func (s *Sequencer[R]) BeginRoundAt(i int) {
	s.mustHaveRounds()
	s.index = Clamp(i, 0, len(s.rounds)-1)
	s.BeginRound()
}

func (s *Sequencer[R]) BeginFirstRound() {
	s.BeginRoundAt(0)
}

// BeginNextRound stays on the last round when already there.
func (s *Sequencer[R]) BeginNextRound() {
	s.BeginRoundAt(s.index + 1)
}

// BeginPreviousRound stays on the first round when already there.
func (s *Sequencer[R]) BeginPreviousRound() {
	s.BeginRoundAt(s.index - 1)
}

// EndRound fires OnFinalRoundEnd on the last round and OnRoundEnd on any
// other. It does not advance; listeners that want to move on call
// BeginNextRound themselves.
func (s *Sequencer[R]) EndRound() {
	current := s.Current()
	s.active = false

	if s.IsFinal() {
		s.logger.WithField("index", s.index).Debug("final round end")
		s.onFinalRoundEnd.Emit()
		return
	}

	s.logger.WithField("index", s.index).Debug("round end")
	s.onRoundEnd.Emit(current)
}

// Current returns the round at the current index. It panics when the
// sequence is empty.
func (s *Sequencer[R]) Current() R {
	s.mustHaveRounds()
	return s.rounds[s.index]
}

func (s *Sequencer[R]) Index() int {
	return s.index
}

func (s *Sequencer[R]) Len() int {
	return len(s.rounds)
}

func (s *Sequencer[R]) IsFinal() bool {
	return len(s.rounds) > 0 && s.index == len(s.rounds)-1
}

// Active reports whether a round has begun and not yet ended. It is
// informational only; begin and end may be called in any order.
func (s *Sequencer[R]) Active() bool {
	return s.active
}

func (s *Sequencer[R]) Rounds() []R {
	return append([]R(nil), s.rounds...)
}

// SetRounds replaces the sequence and clamps the current index into it.
func (s *Sequencer[R]) SetRounds(rs []R) {
	s.rounds = append([]R(nil), rs...)
	if len(s.rounds) == 0 {
		s.index = 0
		s.active = false
		return
	}

	s.index = Clamp(s.index, 0, len(s.rounds)-1)
}

// Label returns the text last pushed to the label, or "" before the first
// round began.
func (s *Sequencer[R]) Label() string {
	return s.lastLabel
}

func (s *Sequencer[R]) SetLabel(l Label) {
	s.label = l
}

func (s *Sequencer[R]) SetLabelPrefix(prefix string) {
	s.prefix = prefix
}

func (s *Sequencer[R]) updateLabel() {
	s.lastLabel = FormatLabel(s.prefix, s.index)
	if s.label == nil {
		return
	}

	s.label.SetText(s.lastLabel)
}

func (s *Sequencer[R]) mustHaveRounds() {
	if len(s.rounds) == 0 {
		s.logger.Error(ErrNoRounds)
		panic(ErrNoRounds)
	}
}

// FormatLabel renders the 1-based display label for index.
func FormatLabel(prefix string, index int) string {
	return prefix + strconv.Itoa(index+1)
}

// Clamp constrains v to [lo, hi].
func Clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
