// Package game implements the main loop that drives the wheel, the ball
// simulation and the result sinks.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/roulette/internal/logger"
	"github.com/Faultbox/roulette/internal/roulette"
)

// ErrFinished is returned by Step once the configured number of rounds has
// been played.
var ErrFinished = errors.New("game: all rounds played")

// maxAnimationRatio caps catch-up after a stalled frame.
const maxAnimationRatio = 4

// Stepper advances the physics engine.
type Stepper interface {
	Step(dt float64)
}

// Config holds loop settings.
type Config struct {
	FPS       int
	MaxRounds int // 0 runs forever

	// Jitter varies the animation ratio of headless frames. Each round runs
	// at a pace drawn from [1-Jitter, 1+Jitter], the way hosts with different
	// refresh rates would drive it, and every frame wobbles around that pace
	// by a tenth of the same spread. Zero runs every frame at ratio 1.
	Jitter float64
	// Seed feeds the jitter source. Equal seeds replay equal rounds.
	Seed uint64

	// ResolveTimeout voids a round whose landed ball has matched no pocket
	// for this many frames. 0 waits forever.
	ResolveTimeout int
}

// Status is a snapshot of the loop, safe to read from other goroutines.
type Status struct {
	Round   int            `json:"round"`
	State   roulette.State `json:"-"`
	Phase   string         `json:"state"`
	Frame   int            `json:"frame"`
	Landed  bool           `json:"landed"`
	Results int            `json:"results"`
	Last    *Event         `json:"last,omitempty"`
}

// Game is the main loop. Only the goroutine calling Run, RunFrames or Step
// touches the round; other goroutines talk to it through RequestReset and
// Status.
type Game struct {
	config  Config
	wheel   *roulette.Wheel
	physics Stepper
	sinks   []Sink
	round   *roulette.Round
	roundNo int
	results int
	resets  chan struct{}
	rng     *rand.Rand
	pace    float64
	stuck   int
	now     func() time.Time
	log     *zap.Logger

	mu     sync.RWMutex
	status Status
}

// New creates a game and arms the first round.
func New(cfg Config, wheel *roulette.Wheel, physics Stepper, sinks ...Sink) (*Game, error) {
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("game: fps must be positive, got %d", cfg.FPS)
	}
	if wheel == nil || physics == nil {
		return nil, errors.New("game: wheel and physics are required")
	}
	if cfg.Jitter < 0 || cfg.Jitter >= 1 {
		return nil, fmt.Errorf("game: jitter must be in [0, 1), got %v", cfg.Jitter)
	}

	g := &Game{
		config:  cfg,
		wheel:   wheel,
		physics: physics,
		sinks:   sinks,
		round:   roulette.NewRound(),
		resets:  make(chan struct{}, 1),
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		pace:    1,
		now:     time.Now,
		log:     logger.Named("game"),
	}

	if err := g.reset(); err != nil {
		return nil, err
	}

	g.log.Info("game initialized",
		zap.Int("fps", cfg.FPS),
		zap.Int("max_rounds", cfg.MaxRounds),
		zap.Int("pockets", len(wheel.Mapping())),
		zap.Int("sinks", len(sinks)),
		zap.Float64("jitter", cfg.Jitter),
		zap.Uint64("seed", cfg.Seed),
	)
	return g, nil
}

// RequestReset asks the loop to abandon the round in flight and start a new
// one at the next frame boundary. Requests made before that frame collapse
// into one.
func (g *Game) RequestReset() {
	select {
	case g.resets <- struct{}{}:
	default:
	}
}

// Status returns the latest loop snapshot.
func (g *Game) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// Done reports whether MaxRounds results have been produced.
func (g *Game) Done() bool {
	return g.config.MaxRounds > 0 && g.results >= g.config.MaxRounds
}

// Step runs one frame. ratio scales the nominal frame time; values of zero or
// less mean one nominal frame.
func (g *Game) Step(ratio float64) error {
	if g.Done() {
		return ErrFinished
	}
	if ratio <= 0 {
		ratio = 1
	}

	select {
	case <-g.resets:
		g.log.Info("reset requested", zap.Int("round", g.roundNo), zap.Int("frame", g.round.Frame))
		if err := g.reset(); err != nil {
			return err
		}
	default:
	}

	g.physics.Step(ratio / float64(g.config.FPS))

	res, err := g.wheel.Tick(g.round, roulette.Frame{AnimationRatio: ratio})
	if res.Result != nil {
		g.emit(*res.Result, res.Frame)
	}
	if err != nil {
		return fmt.Errorf("round %d: %w", g.roundNo, err)
	}

	if res.State == roulette.Resolving && res.Landed {
		g.stuck++
	} else {
		g.stuck = 0
	}
	if t := g.config.ResolveTimeout; t > 0 && g.stuck >= t {
		g.log.Warn("no pocket matched, voiding round",
			zap.Int("round", g.roundNo),
			zap.Int("frame", res.Frame),
			zap.Int("frames_waited", g.stuck),
		)
		return g.reset()
	}

	g.publishStatus(res)
	return nil
}

// headlessRatio is the animation ratio of the next unpaced frame.
func (g *Game) headlessRatio() float64 {
	if g.config.Jitter == 0 {
		return 1
	}
	return g.pace + g.config.Jitter/10*(2*g.rng.Float64()-1)
}

// RunFrames runs up to n frames back to back, without wall-clock pacing. The
// animation ratio of each frame comes from the seeded jitter source. It stops
// early once the game is done and returns the number of frames run.
func (g *Game) RunFrames(n int) (int, error) {
	for i := 0; i < n; i++ {
		if err := g.Step(g.headlessRatio()); err != nil {
			if errors.Is(err, ErrFinished) {
				return i, nil
			}
			return i, err
		}
	}
	return n, nil
}

// Run ticks the game at the configured frame rate until ctx is cancelled or
// the game is done.
func (g *Game) Run(ctx context.Context) error {
	frame := time.Second / time.Duration(g.config.FPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	g.log.Info("starting game loop", zap.Duration("frame", frame))

	last := g.now()
	frameCount := 0
	fpsTimer := last

	for {
		select {
		case <-ctx.Done():
			g.log.Info("game loop stopped", zap.Error(ctx.Err()))
			return nil
		case <-ticker.C:
		}

		now := g.now()
		ratio := min(float64(now.Sub(last))/float64(frame), maxAnimationRatio)
		last = now

		if err := g.Step(ratio); err != nil {
			if errors.Is(err, ErrFinished) {
				g.log.Info("all rounds played", zap.Int("results", g.results))
				return nil
			}
			return err
		}

		frameCount++
		if now.Sub(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("ratio", ratio))
			frameCount = 0
			fpsTimer = now
		}
	}
}

func (g *Game) reset() error {
	if err := g.wheel.Reset(g.round); err != nil {
		return fmt.Errorf("arming round %d: %w", g.roundNo+1, err)
	}
	g.roundNo++
	g.newPace()
	g.publishStatus(roulette.FrameResult{State: g.round.State})
	return nil
}

// newPace draws the headless frame pace of the round being armed.
func (g *Game) newPace() {
	g.stuck = 0
	if g.config.Jitter == 0 {
		g.pace = 1
		return
	}
	g.pace = 1 + g.config.Jitter*(2*g.rng.Float64()-1)
	g.log.Debug("round pace", zap.Int("round", g.roundNo), zap.Float64("ratio", g.pace))
}

func (g *Game) emit(r roulette.Result, frame int) {
	ev := newEvent(g.roundNo, r, frame, g.now())
	g.results++
	// the wheel re-arms itself after a result
	g.roundNo++
	g.newPace()

	for _, s := range g.sinks {
		s.Publish(ev)
	}

	g.mu.Lock()
	g.status.Results = g.results
	g.status.Last = &ev
	g.mu.Unlock()
}

func (g *Game) publishStatus(res roulette.FrameResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status.Round = g.roundNo
	g.status.State = res.State
	g.status.Phase = res.State.String()
	g.status.Frame = g.round.Frame
	g.status.Landed = res.Landed
	g.status.Results = g.results
}
