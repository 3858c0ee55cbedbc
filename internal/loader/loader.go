// Package loader decodes and resizes contact-sheet images off the UI
// goroutine. One session covers one frozen pair list; the producer walks the
// list in order and publishes one delivery per image, then a done sentinel.
// The channel is buffered for the whole list so the producer never blocks on
// a slow consumer and always runs to completion.
package loader

import (
	"image"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kk-code-lab/vsheet/internal/imaging"
	"github.com/kk-code-lab/vsheet/internal/match"
)

// Delivery is one loaded image, tagged with its session so consumers can
// discard leftovers from an abandoned session, and with both the position in
// the frozen list and the pair's stable identity.
type Delivery struct {
	Session   uuid.UUID
	Position  int
	VideoPath string

	// Raw is the decoded image; Fitted is Raw resized for the session's box,
	// nil when the box was not usable at session start.
	Raw    image.Image
	Fitted image.Image
	BoxW   int
	BoxH   int

	// Done marks the sentinel pushed after the last pair. All other fields
	// except Session are zero on it.
	Done bool
}

// Session identifies one background load and carries its delivery channel.
type Session struct {
	ID         uuid.UUID
	Deliveries chan Delivery
}

// Scheduler starts load sessions. The decode function is swappable for
// tests.
type Scheduler struct {
	log    *slog.Logger
	decode func(path string) (image.Image, error)
}

// New constructs a Scheduler that decodes images from disk.
func New(log *slog.Logger) *Scheduler {
	return &Scheduler{log: log, decode: imaging.Decode}
}

// SetDecoder replaces the decode function. Test hook.
func (s *Scheduler) SetDecoder(decode func(path string) (image.Image, error)) {
	s.decode = decode
}

// Start launches the producer goroutine over its own copy of pairs and
// returns immediately. boxW and boxH are the viewport box at session start;
// deliveries carry images pre-fitted for it when it is usable.
func (s *Scheduler) Start(pairs []match.Pair, boxW, boxH int) *Session {
	frozen := make([]match.Pair, len(pairs))
	copy(frozen, pairs)

	session := &Session{
		ID:         uuid.New(),
		Deliveries: make(chan Delivery, len(frozen)+1),
	}

	go s.produce(session, frozen, boxW, boxH)
	return session
}

func (s *Scheduler) produce(session *Session, pairs []match.Pair, boxW, boxH int) {
	for i, pair := range pairs {
		raw, err := s.decode(pair.ImagePath)
		if err != nil {
			s.log.Warn("decode failed, position will stay unavailable",
				"position", i, "image", pair.ImagePath, "error", err)
			continue
		}

		fitted, _ := imaging.Fit(raw, boxW, boxH)
		session.Deliveries <- Delivery{
			Session:   session.ID,
			Position:  i,
			VideoPath: pair.VideoPath,
			Raw:       raw,
			Fitted:    fitted,
			BoxW:      boxW,
			BoxH:      boxH,
		}
	}
	session.Deliveries <- Delivery{Session: session.ID, Done: true}
}

// Drain returns every delivery currently available without blocking.
func Drain(ch <-chan Delivery) []Delivery {
	var out []Delivery
	for {
		select {
		case d := <-ch:
			out = append(out, d)
		default:
			return out
		}
	}
}
