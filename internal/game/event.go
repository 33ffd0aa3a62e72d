package game

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/roulette/internal/logger"
	"github.com/Faultbox/roulette/internal/roulette"
)

// Event is one resolved round as reported to sinks.
type Event struct {
	ID     uuid.UUID      `json:"id"`
	Round  int            `json:"round"`
	Index  int            `json:"index"`
	Number int            `json:"number"`
	Color  roulette.Color `json:"color"`
	Frame  int            `json:"frame"`
	At     time.Time      `json:"at"`
}

func newEvent(round int, r roulette.Result, frame int, at time.Time) Event {
	return Event{
		ID:     uuid.New(),
		Round:  round,
		Index:  r.Index,
		Number: r.Pocket.Number,
		Color:  r.Pocket.Color,
		Frame:  frame,
		At:     at.UTC(),
	}
}

// Sink receives every result. Publish is called from the game loop and must
// not block.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Publish calls f(ev).
func (f SinkFunc) Publish(ev Event) {
	f(ev)
}

// LogSink writes results to the log.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink returns a sink logging under the "results" name.
func NewLogSink() *LogSink {
	return &LogSink{log: logger.Named("results")}
}

// Publish logs ev at info level.
func (s *LogSink) Publish(ev Event) {
	s.log.Info("result",
		zap.Stringer("id", ev.ID),
		zap.Int("round", ev.Round),
		zap.Int("number", ev.Number),
		zap.String("color", string(ev.Color)),
		zap.Int("frame", ev.Frame),
	)
}
