// Package engine implements the slot reconciliation and sequential
// questioning state machine.
//
// A Session:
//  1. Computes the logical day and its offerable slots from a fresh clock read
//  2. Fetches the answered-slot set from the backend (the ground truth)
//  3. Subtracts answered from offerable, preserving chronological order
//  4. Injects the once-per-day bonus prompts before the first slot of a
//     fresh day, gated by the remote bonus flag
//  5. Advances one question at a time until the day is complete
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sorakaya/balloonlog/internal/domain"
)

// Backend is the remote persistence surface the engine reconciles against.
// The client never trusts local state for answered slots or the bonus flag.
type Backend interface {
	AnsweredSlots(ctx context.Context, date string) ([]string, error)
	BonusStatus(ctx context.Context) (bool, error)
	SubmitAnswer(ctx context.Context, date, slot, action string, delta int) error
	ApplyBonus(ctx context.Context, bonus int, q1, q2 bool) error
	CurrentAltitude(ctx context.Context) (int, error)
}

// State identifies where the questioning machine is.
type State int

const (
	StateIdle State = iota
	StateAwaitingBonus
	StateAwaitingSlot
	StateComplete
	StateHalted
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingBonus:
		return "awaiting_bonus"
	case StateAwaitingSlot:
		return "awaiting_slot"
	case StateComplete:
		return "complete"
	case StateHalted:
		return "halted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Config controls session behavior.
type Config struct {
	Location  *time.Location
	WindowEnd domain.WindowEnd
	Floor     int              // altitude display floor
	Clock     func() time.Time // overridable for tests
}

// DefaultConfig returns session defaults.
func DefaultConfig() Config {
	return Config{
		Location:  time.Local,
		WindowEnd: domain.DefaultWindowEnd,
		Floor:     0,
		Clock:     time.Now,
	}
}

// Transition is the observable result of answering one question.
type Transition struct {
	Delta   int   // points applied by this answer (0 until the bonus completes)
	Steps   []int // successive displayed altitude values, unit-stepped
	Floored bool  // the display floor was hit and the value clamped
	State   State // state after the transition
}

// Session drives the questioning flow for one logical day. All mutable
// state (pending slots, indices, the bonus flag, the meter) is confined
// to the session; it is not safe for concurrent use and does not need
// to be — questioning is strictly sequential.
type Session struct {
	backend Backend
	cfg     Config
	log     zerolog.Logger

	day        string
	state      State
	pending    []domain.Slot
	idx        int
	bonusIdx   int
	bonusYes   [2]bool
	bonusDelta int
	meter      *Meter
	haltErr    error
}

// NewSession creates a session over the given backend.
func NewSession(backend Backend, cfg Config, log zerolog.Logger) *Session {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Session{
		backend: backend,
		cfg:     cfg,
		log:     log,
		state:   StateIdle,
	}
}

// Start performs the once-per-day reconciliation and picks the initial
// state. A failure to fetch the answered-slot set or the bonus flag halts
// the session: treating a failed fetch as "nothing answered" would re-ask
// the whole day.
func (s *Session) Start(ctx context.Context) error {
	now := s.cfg.Clock()
	s.day = domain.DayFor(now)

	all, err := domain.SlotsFor(s.day, now, s.cfg.Location, s.cfg.WindowEnd)
	if err != nil {
		return s.halt(fmt.Errorf("compute slots: %w", err))
	}

	answered, err := s.backend.AnsweredSlots(ctx, s.day)
	if err != nil {
		return s.halt(fmt.Errorf("fetch answered slots: %w", err))
	}
	s.pending = subtract(all, answered)
	s.idx = 0

	altitude, err := s.backend.CurrentAltitude(ctx)
	if err != nil {
		return s.halt(fmt.Errorf("fetch altitude: %w", err))
	}
	s.meter = NewMeter(altitude, s.cfg.Floor)

	// The bonus prompts run only on a fresh day: nothing answered yet and
	// the remote flag not set. The flag, not client memory, is what makes
	// this once-per-day across reloads.
	if len(answered) == 0 && len(all) > 0 {
		given, err := s.backend.BonusStatus(ctx)
		if err != nil {
			return s.halt(fmt.Errorf("fetch bonus status: %w", err))
		}
		if !given {
			s.state = StateAwaitingBonus
			s.bonusIdx = 0
			s.bonusDelta = 0
			s.log.Debug().Str("day", s.day).Int("pending", len(s.pending)).Msg("starting with bonus prompts")
			return nil
		}
	}

	if len(s.pending) == 0 {
		s.state = StateComplete
		s.log.Debug().Str("day", s.day).Msg("day already complete")
		return nil
	}

	s.state = StateAwaitingSlot
	s.log.Debug().Str("day", s.day).Int("pending", len(s.pending)).Msg("starting at first unanswered slot")
	return nil
}

// State returns the current machine state.
func (s *Session) State() State { return s.state }

// Day returns the logical day the session reconciled against.
func (s *Session) Day() string { return s.day }

// Altitude returns the currently displayed altitude value.
func (s *Session) Altitude() int {
	if s.meter == nil {
		return 0
	}
	return s.meter.Value()
}

// Remaining returns how many slot questions are still pending.
func (s *Session) Remaining() int {
	if s.state != StateAwaitingSlot {
		return 0
	}
	return len(s.pending) - s.idx
}

// Err returns the error that halted the session, if any.
func (s *Session) Err() error { return s.haltErr }

// Question returns the text of the pending question.
func (s *Session) Question() (string, error) {
	switch s.state {
	case StateAwaitingBonus:
		return domain.BonusQuestions()[s.bonusIdx].Prompt, nil
	case StateAwaitingSlot:
		return fmt.Sprintf("What were you doing between %s?", s.pending[s.idx].Range()), nil
	case StateComplete:
		return "", domain.ErrDayComplete
	case StateHalted:
		return "", s.haltErr
	}
	return "", domain.ErrNoPendingQuestion
}

// CurrentSlot returns the slot awaiting an answer.
func (s *Session) CurrentSlot() (domain.Slot, bool) {
	if s.state != StateAwaitingSlot {
		return domain.Slot{}, false
	}
	return s.pending[s.idx], true
}

// CurrentBonusQuestion returns the bonus prompt awaiting an answer.
func (s *Session) CurrentBonusQuestion() (domain.BonusQuestion, bool) {
	if s.state != StateAwaitingBonus {
		return domain.BonusQuestion{}, false
	}
	return domain.BonusQuestions()[s.bonusIdx], true
}

// AnswerSlot records the activity for the current slot and advances.
// Submission is optimistic: a failed POST is logged and surfaced in the
// session log but does not block progression — reconciliation re-derives
// the truth from the backend on the next load.
func (s *Session) AnswerSlot(ctx context.Context, a domain.Activity) (Transition, error) {
	if s.state != StateAwaitingSlot {
		return Transition{State: s.state}, domain.ErrNoPendingQuestion
	}

	slot := s.pending[s.idx]
	delta := a.Delta()

	if err := s.backend.SubmitAnswer(ctx, s.day, slot.Label(), a.Label(), delta); err != nil {
		s.log.Warn().Err(err).Str("slot", slot.Label()).Msg("answer submission failed, continuing optimistically")
	}

	steps, floored := s.meter.Apply(delta)

	s.idx++
	if s.idx >= len(s.pending) {
		s.state = StateComplete
	}

	return Transition{Delta: delta, Steps: steps, Floored: floored, State: s.state}, nil
}

// AnswerBonus records one bonus prompt. Each answer is submitted
// independently under the sentinel slot marker; the accumulated delta is
// applied once, after the second prompt, through the same meter path as
// slot answers.
func (s *Session) AnswerBonus(ctx context.Context, yes bool) (Transition, error) {
	if s.state != StateAwaitingBonus {
		return Transition{State: s.state}, domain.ErrNoPendingQuestion
	}

	q := domain.BonusQuestions()[s.bonusIdx]
	delta := 0
	if yes {
		delta = domain.BonusPointsPerYes
	}
	s.bonusYes[s.bonusIdx] = yes
	s.bonusDelta += delta

	if err := s.backend.SubmitAnswer(ctx, s.day, domain.BonusSlotMarker, q.Key, delta); err != nil {
		s.log.Warn().Err(err).Str("question", q.Key).Msg("bonus submission failed, continuing optimistically")
	}

	s.bonusIdx++
	if s.bonusIdx < len(domain.BonusQuestions()) {
		return Transition{State: StateAwaitingBonus}, nil
	}

	// Both prompts answered: persist the day's bonus record, then apply
	// the accumulated delta in one animated transition.
	if err := s.backend.ApplyBonus(ctx, s.bonusDelta, s.bonusYes[0], s.bonusYes[1]); err != nil {
		s.log.Warn().Err(err).Msg("apply bonus failed, continuing optimistically")
	}

	steps, floored := s.meter.Apply(s.bonusDelta)

	if len(s.pending) > 0 {
		s.state = StateAwaitingSlot
	} else {
		s.state = StateComplete
	}

	return Transition{Delta: s.bonusDelta, Steps: steps, Floored: floored, State: s.state}, nil
}

// halt parks the session in the terminal error state.
func (s *Session) halt(err error) error {
	s.state = StateHalted
	s.haltErr = fmt.Errorf("%w: %v", domain.ErrSessionHalted, err)
	s.log.Error().Err(err).Msg("session halted")
	return s.haltErr
}

// subtract returns all minus answered, order preserved. Equality is by
// slot start label.
func subtract(all []domain.Slot, answered []string) []domain.Slot {
	done := make(map[string]struct{}, len(answered))
	for _, label := range answered {
		done[label] = struct{}{}
	}
	var out []domain.Slot
	for _, s := range all {
		if _, ok := done[s.Label()]; !ok {
			out = append(out, s)
		}
	}
	return out
}
