package sim

import (
	gomath "math"

	"github.com/akmonengine/feather/actor"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/roulette/pkg/math"
)

// PhysicsConfig tunes the ball simulation.
type PhysicsConfig struct {
	BallMass    float64 `yaml:"ball_mass"`
	BallRadius  float64 `yaml:"ball_radius"`
	Gravity     float64 `yaml:"gravity"`
	Damping     float64 `yaml:"damping"` // exponential velocity decay rate, per second
	Ceiling     float64 `yaml:"ceiling"` // invisible lid keeping the ball in the bowl
	ContactSlop float64 `yaml:"contact_slop"`
}

// DefaultPhysics returns the stock ball tuning.
func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		BallMass:    20,
		BallRadius:  0.07,
		Gravity:     9.81,
		Damping:     0.5,
		Ceiling:     0.8,
		ContactSlop: 0.005,
	}
}

// World runs the ball inside the wheel bowl. The ball is a feather rigid
// body integrated under gravity, the applied force and the slope of the
// surface under it; the bowl itself is a set of positional constraints: the
// outer wall, the sloped track and cone, the tilted ring and the lid. The ball
// never bounces.
type World struct {
	cfg   PhysicsConfig
	geom  Geometry
	ball  *actor.RigidBody
	mass  float64
	force math.Vec3
}

// NewWorld places a ball at start. A non-positive ball mass is taken as 1.
func NewWorld(cfg PhysicsConfig, g Geometry, start math.Vec3) *World {
	mass := cfg.BallMass
	if mass <= 0 {
		mass = 1
	}
	var density float64
	if r := cfg.BallRadius; r > 0 {
		density = mass / (4.0 / 3.0 * gomath.Pi * r * r * r)
	}

	t := actor.Transform{Position: toMgl(start), Rotation: mgl64.QuatIdent()}
	ball := actor.NewRigidBody(t, &actor.Sphere{Radius: cfg.BallRadius}, actor.BodyTypeDynamic, density)
	ball.Material.LinearDamping = cfg.Damping

	return &World{
		cfg:  cfg,
		geom: g,
		ball: ball,
		mass: mass,
	}
}

// Mass returns the ball mass.
func (w *World) Mass() float64 {
	return w.mass
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	pos := w.BallPosition()
	acc := w.force.Scale(1 / w.mass)
	acc.Y -= w.cfg.Gravity
	w.force = math.Vec3{}

	if r := pos.XZ().Length(); r > 1e-9 && w.onFloor(pos, r) {
		push := w.slopeAccel(r) / r
		acc.X += push * pos.X
		acc.Z += push * pos.Z
	}

	w.ball.Integrate(dt, toMgl(acc))
	w.constrain()

	if rad := w.cfg.BallRadius; rad > 0 {
		// rolling without slipping on a horizontal surface
		v := w.ball.Velocity
		w.ball.AngularVelocity = mgl64.Vec3{v.Z() / rad, 0, -v.X() / rad}
	}
}

// slopeAccel is the radial pull of the bowl surface at radius r: negative
// down the track and the ring, positive down the cone.
func (w *World) slopeAccel(r float64) float64 {
	var s float64
	switch {
	case r > w.geom.OuterRadius:
		s = -w.geom.TrackSlope
	case r < w.geom.InnerRadius:
		s = w.geom.ConeSlope
	default:
		s = -w.geom.RingTilt
	}
	return w.cfg.Gravity * s / (1 + s*s)
}

func (w *World) onFloor(p math.Vec3, r float64) bool {
	return p.Y-w.cfg.BallRadius <= w.geom.FloorHeight(r)+w.cfg.ContactSlop
}

// constrain projects the ball back inside the bowl and drops the velocity
// component that points out of it.
func (w *World) constrain() {
	p := w.BallPosition()
	v := w.BallVelocity()
	rad := w.cfg.BallRadius
	r := p.XZ().Length()

	if maxR := w.geom.WallRadius - rad; r > maxR && r > 0 {
		n := math.Vec3{X: p.X / r, Z: p.Z / r}
		p.X = n.X * maxR
		p.Z = n.Z * maxR
		if out := v.Dot(n); out > 0 {
			v = v.Sub(n.Scale(out))
		}
		r = maxR
	}

	if floor := w.geom.FloorHeight(r) + rad; p.Y < floor {
		p.Y = floor
		v.Y = max(v.Y, 0)
	}
	if p.Y > w.cfg.Ceiling {
		p.Y = w.cfg.Ceiling
		v.Y = min(v.Y, 0)
	}

	w.ball.Transform.Position = toMgl(p)
	w.ball.Velocity = toMgl(v)
}

// BallPosition returns the ball centre.
func (w *World) BallPosition() math.Vec3 {
	return fromMgl(w.ball.Transform.Position)
}

// SetBallPosition teleports the ball.
func (w *World) SetBallPosition(p math.Vec3) {
	w.ball.Transform.Position = toMgl(p)
	w.ball.PreviousTransform.Position = w.ball.Transform.Position
}

// BallVelocity returns the ball's linear velocity.
func (w *World) BallVelocity() math.Vec3 {
	return fromMgl(w.ball.Velocity)
}

// SetBallVelocity overwrites linear and angular velocity.
func (w *World) SetBallVelocity(linear, angular math.Vec3) {
	w.ball.Velocity = toMgl(linear)
	w.ball.AngularVelocity = toMgl(angular)
}

// BallAngularVelocity returns the ball's spin.
func (w *World) BallAngularVelocity() math.Vec3 {
	return fromMgl(w.ball.AngularVelocity)
}

// ApplyBallForce queues a force for the next step. The force acts through
// the ball centre; the application point is ignored.
func (w *World) ApplyBallForce(force, _ math.Vec3) {
	w.force = w.force.Add(force)
}

// BallTouchesRing reports whether the ball rests on the numbers ring.
func (w *World) BallTouchesRing() bool {
	p := w.BallPosition()
	r := p.XZ().Length()
	rad := w.cfg.BallRadius
	if r < w.geom.InnerRadius-rad || r > w.geom.OuterRadius+rad {
		return false
	}
	return p.Y-rad <= w.geom.FloorHeight(min(max(r, w.geom.InnerRadius), w.geom.OuterRadius))+w.cfg.ContactSlop
}

func toMgl(v math.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) math.Vec3 {
	return math.Vec3{X: v.X(), Y: v.Y(), Z: v.Z()}
}
