package roulette

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/roulette/internal/logger"
	"github.com/Faultbox/roulette/pkg/math"
)

// State is the phase of a round.
type State int

// Round phases. Idle and Resolved are transient: a resolved round resets
// straight back to Spinning within the same frame.
const (
	Idle State = iota
	Spinning
	Resolving
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Scene is the engine side of the wheel: mesh data and the wheel transform.
type Scene interface {
	// MeshVertices returns the flat xyz position buffer of a named mesh, in
	// world space at the wheel's reference orientation.
	MeshVertices(name string) ([]float32, bool)
	// SetWheelOrientation replaces the rotating part's orientation.
	SetWheelOrientation(q math.Quat)
	// RotateWheel applies an incremental rotation to the rotating part.
	RotateWheel(q math.Quat)
}

// Physics is the slice of the rigid-body engine the core drives.
type Physics interface {
	BallPosition() math.Vec3
	SetBallPosition(p math.Vec3)
	BallVelocity() math.Vec3
	SetBallVelocity(linear, angular math.Vec3)
	// ApplyBallForce pushes the ball with force applied at a world point.
	ApplyBallForce(force, at math.Vec3)
	// BallTouchesRing reports whether the ball intersects the numbers ring.
	BallTouchesRing() bool
}

// Settings are the fixed parameters of the wheel.
type Settings struct {
	StartSpeed     float64 // radians per frame
	FrictionStep   float64 // radians per frame per frame
	MinRotation    float64 // smaller per-frame angles are not applied
	LaunchFrames   int
	LaunchStrength float64
	DownwardBias   float64
	LaunchPoint    math.Vec3
	RingCenter     math.Vec3
	Reference      math.Quat
	NumbersMesh    string
	SeparatorsMesh string
	ClosedRing     bool
}

// DefaultSettings returns the stock wheel tuning.
func DefaultSettings() Settings {
	return Settings{
		StartSpeed:     0.03,
		FrictionStep:   0.00001,
		MinRotation:    0.002,
		LaunchFrames:   300,
		LaunchStrength: 20 * 5, // ball mass * 5
		DownwardBias:   -10,
		LaunchPoint:    math.Vec3{X: 2, Y: 0.3, Z: 0},
		Reference:      math.Quat{X: 0, Y: 1, Z: 0, W: 0},
		NumbersMesh:    "numbers",
		SeparatorsMesh: "separators",
		ClosedRing:     false,
	}
}

// SpinState is the per-round bookkeeping of the spin and the launch.
type SpinState struct {
	StartSpeed    float64
	Friction      float64
	SpinFrames    int
	LaunchActive  bool
	LaunchFrames  int
	ResultPending bool
	Landed        bool
}

// Round is the mutable state of the round in flight.
type Round struct {
	State      State
	Spin       SpinState
	Table      PocketTable
	Separators []math.Vec3
	Frame      int
}

// NewRound returns an unarmed round. Call Wheel.Reset before ticking it.
func NewRound() *Round {
	return &Round{State: Idle}
}

// Frame carries per-frame timing from the host loop.
type Frame struct {
	// AnimationRatio is elapsed time over the nominal frame time. Zero means 1.
	AnimationRatio float64
}

// FrameResult reports what a tick did.
type FrameResult struct {
	State  State
	Frame  int     // frame of the round this tick advanced
	Angle  float64 // wheel rotation applied this frame
	Landed bool
	Result *Result
}

// Wheel runs rounds against a scene and a physics engine. It holds no round
// state of its own.
type Wheel struct {
	settings   Settings
	mapping    Mapping
	scene      Scene
	physics    Physics
	stopFrames int
	log        *zap.Logger
}

// NewWheel validates the settings and mapping and binds the collaborators.
func NewWheel(s Settings, m Mapping, scene Scene, physics Physics) (*Wheel, error) {
	if scene == nil || physics == nil {
		return nil, errors.New("wheel: scene and physics are required")
	}
	if s.StartSpeed <= 0 || s.FrictionStep <= 0 {
		return nil, fmt.Errorf("wheel: start speed %v and friction step %v must be positive", s.StartSpeed, s.FrictionStep)
	}
	if s.LaunchFrames < 0 {
		return nil, fmt.Errorf("wheel: launch frames %d must not be negative", s.LaunchFrames)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &Wheel{
		settings:   s,
		mapping:    m,
		scene:      scene,
		physics:    physics,
		stopFrames: StopFrames(s.StartSpeed, s.FrictionStep),
		log:        logger.Named("wheel"),
	}, nil
}

// Settings returns the wheel's parameters.
func (w *Wheel) Settings() Settings {
	return w.settings
}

// Mapping returns the pocket mapping.
func (w *Wheel) Mapping() Mapping {
	return w.mapping
}

// StopFrames is the number of spinning frames it takes friction step f to
// use up start speed s: ceil(s/f).
func StopFrames(s, f float64) int {
	x := s / f
	n := gomath.Round(x)
	if gomath.Abs(x-n) > 1e-9*gomath.Max(1, x) {
		n = gomath.Ceil(x)
	}
	return int(n)
}

// friction is the accumulated speed loss after the given number of spinning
// frames. It is computed in closed form so the stop frame is exact.
func (w *Wheel) friction(frames int) float64 {
	if frames >= w.stopFrames {
		return w.settings.StartSpeed
	}
	return float64(frames) * w.settings.FrictionStep
}

// Reset arms r for a new round: the wheel returns to its reference
// orientation, the pocket table is rebuilt from the numbers mesh and the ball
// is parked at the launch point. It is safe to call in any state. On error r
// is left Idle with no table.
func (w *Wheel) Reset(r *Round) error {
	*r = Round{State: Idle}

	w.scene.SetWheelOrientation(w.settings.Reference)

	numbers, ok := w.scene.MeshVertices(w.settings.NumbersMesh)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingMeshReference, w.settings.NumbersMesh)
	}
	separators, ok := w.scene.MeshVertices(w.settings.SeparatorsMesh)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingMeshReference, w.settings.SeparatorsMesh)
	}

	table, err := BuildPocketTable(numbers)
	if err != nil {
		return fmt.Errorf("building pocket table from %q: %w", w.settings.NumbersMesh, err)
	}
	if len(table) != len(w.mapping) {
		return fmt.Errorf("%w: %d boundaries, %d pockets", ErrMappingMismatch, len(table), len(w.mapping))
	}

	w.physics.SetBallPosition(w.settings.LaunchPoint)
	w.physics.SetBallVelocity(math.Vec3{}, math.Vec3{})

	*r = Round{
		State: Spinning,
		Spin: SpinState{
			StartSpeed:   w.settings.StartSpeed,
			LaunchActive: true,
		},
		Table:      table,
		Separators: ExtractVertices(separators),
	}

	w.log.Debug("round armed",
		zap.Int("boundaries", len(table)),
		zap.Int("separator_vertices", len(r.Separators)),
		zap.Int("stop_frame", w.stopFrames),
	)
	return nil
}

// Tick advances r by one frame.
func (w *Wheel) Tick(r *Round, f Frame) (FrameResult, error) {
	if r.State == Idle {
		return FrameResult{State: Idle}, nil
	}

	ratio := f.AnimationRatio
	if ratio <= 0 {
		ratio = 1
	}
	r.Frame++

	res := FrameResult{Frame: r.Frame}
	if r.State == Spinning {
		res.Angle = w.spin(r, ratio)
	}

	w.detectLanding(r)
	res.Landed = r.Spin.Landed

	if r.State == Resolving && r.Spin.Landed && w.physics.BallVelocity().Floor().IsZero() {
		if result, ok := w.resolve(r); ok {
			res.Result = &result
			if err := w.Reset(r); err != nil {
				res.State = r.State
				return res, err
			}
			res.State = r.State
			return res, nil
		}
	}

	if r.State == Spinning && r.Spin.Friction >= r.Spin.StartSpeed {
		r.State = Resolving
		r.Spin.ResultPending = true
		w.log.Debug("wheel stopped", zap.Int("frame", r.Frame))
	}

	w.launch(r)

	res.State = r.State
	return res, nil
}

// spin applies friction and turns the wheel, the pocket table and a landed
// ball by this frame's angle. It returns the angle applied.
func (w *Wheel) spin(r *Round, ratio float64) float64 {
	r.Spin.SpinFrames++
	r.Spin.Friction = w.friction(r.Spin.SpinFrames)

	angle := -(r.Spin.StartSpeed - r.Spin.Friction) * ratio
	if gomath.Abs(angle) < w.settings.MinRotation {
		return 0
	}

	q := math.QuatFromAxisAngle(math.UnitY, angle)
	w.scene.RotateWheel(q)
	r.Table.RotateQuat(q)

	if r.Spin.Landed {
		pos := w.physics.BallPosition()
		w.physics.SetBallPosition(q.RotateAround(pos, w.settings.RingCenter))
	}
	return angle
}

// detectLanding latches Landed on ring contact and pins the ball in place.
func (w *Wheel) detectLanding(r *Round) {
	if !w.physics.BallTouchesRing() {
		return
	}
	if !r.Spin.Landed {
		w.log.Debug("ball landed", zap.Int("frame", r.Frame), zap.Stringer("state", r.State))
	}
	r.Spin.Landed = true
	w.physics.SetBallVelocity(math.Vec3{}, math.Vec3{})
}

// resolve runs containment. A miss leaves the round Resolving for next frame.
func (w *Wheel) resolve(r *Round) (Result, bool) {
	r.State = Resolved
	ball := w.physics.BallPosition().XZ()

	result, ok := Resolve(r.Table, w.mapping, ball, w.settings.ClosedRing)
	if !ok {
		r.State = Resolving
		return Result{}, false
	}

	r.Spin.ResultPending = false
	w.log.Info("round resolved",
		zap.Int("number", result.Pocket.Number),
		zap.String("color", string(result.Pocket.Color)),
		zap.Int("pocket_index", result.Index),
		zap.Int("frame", r.Frame),
	)
	r.State = Idle
	return result, true
}

// launch pushes the ball for the first LaunchFrames frames of the round.
func (w *Wheel) launch(r *Round) {
	if !r.Spin.LaunchActive {
		return
	}
	if r.Spin.LaunchFrames < w.settings.LaunchFrames {
		pos := w.physics.BallPosition()
		w.physics.ApplyBallForce(LaunchForce(pos, w.settings.LaunchStrength, w.settings.DownwardBias), pos)
		r.Spin.LaunchFrames++
	}
	if r.Spin.LaunchFrames >= w.settings.LaunchFrames {
		r.Spin.LaunchActive = false
	}
}
