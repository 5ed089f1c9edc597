package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shootscroller/common"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

const collisionTypeBody cp.CollisionType = 1

// continuousSubsteps is how many sub-steps a tick is split into while any
// body asks for continuous collision.
const continuousSubsteps = 4

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	// world is only set while Update runs, so collision callbacks can queue
	// contact events.
	world *ecs.World

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	handle *chipmunkBody
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Gravity is the magnitude of world gravity.
func (ps *PhysicsSystem) Gravity() float64 {
	return common.Gravity
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.world = w
	defer func() { ps.world = nil }()

	ps.ensureHandlers()
	ps.syncEntities(w)

	dt := w.DeltaTime()
	if dt <= 0 {
		dt = ecs.DefaultFixedStep
	}
	steps := 1
	for _, info := range ps.entities {
		if info.handle.continuous {
			steps = continuousSubsteps
			break
		}
	}
	for i := 0; i < steps; i++ {
		ps.space.Step(dt / float64(steps))
	}

	ps.syncTransforms(w)
}

// Reset drops every body. The next Update rebuilds the space from the world.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.space = nil
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.shapes = make(map[*cp.Shape]ecs.Entity)
}

// Overlaps reports whether any solid shape in mask lies within radius of
// (x, y).
func (ps *PhysicsSystem) Overlaps(x, y, radius float64, mask uint32) bool {
	if ps == nil || ps.space == nil {
		return false
	}
	filter := cp.NewShapeFilter(0, ^uint(0), uint(mask))
	info := ps.space.PointQueryNearest(cp.Vector{X: x, Y: y}, radius, filter)
	if info == nil || info.Shape == nil {
		return false
	}
	return !info.Shape.Sensor()
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		sys.queueContact(arb, ecs.ContactEnter)
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		sys.queueContact(arb, ecs.ContactExit)
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) queueContact(arb *cp.Arbiter, kind ecs.ContactKind) {
	if ps.world == nil {
		return
	}
	shapeA, shapeB := arb.Shapes()
	a, okA := ps.shapes[shapeA]
	b, okB := ps.shapes[shapeB]
	if !okA || !okB || a == b {
		return
	}
	evt := ecs.ContactEvent{
		Kind:    kind,
		A:       a,
		B:       b,
		Trigger: shapeA.Sensor() || shapeB.Sensor(),
	}
	if body := shapeA.Body(); body != nil {
		v := body.Velocity()
		evt.AVelX, evt.AVelY = v.X, v.Y
	}
	if body := shapeB.Body(); body != nil {
		v := body.Velocity()
		evt.BVelX, evt.BVelY = v.X, v.Y
	}
	ps.world.Events().PushContact(evt)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		if info := ps.entities[e]; info != nil {
			if bodyComp.Body != nil && bodyComp.Static == info.static {
				continue
			}
			// Cleared or retyped by gameplay code: rebuild in place.
			ps.removeBody(e, info)
		}

		scale := 1.0
		if gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			scale = gs.Scale
		}
		layer, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())

		// Children store an offset; bodies live in world space.
		x, y, _ := worldPosition(w, e)
		handle := ps.createBody(x, y, transform.Rotation, bodyComp, layer, scale)
		if handle == nil {
			continue
		}
		ps.entities[e] = &bodyInfo{handle: handle, static: bodyComp.Static}
		ps.shapes[handle.shape] = e
		bodyComp.Body = handle
	}
}

func (ps *PhysicsSystem) createBody(x, y, rotation float64, bodyComp *component.PhysicsBody, layer *component.CollisionLayer, gravityScale float64) *chipmunkBody {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius

	if radius <= 0 && (width <= 0 || height <= 0) {
		width = common.TileSize
		height = common.TileSize
	}

	sizeW, sizeH := width, height
	if radius > 0 {
		sizeW = radius * 2
		sizeH = radius * 2
	}

	topLeftX := x + bodyComp.OffsetX
	topLeftY := y + bodyComp.OffsetY
	if !bodyComp.AlignTopLeft {
		topLeftX -= sizeW / 2
		topLeftY -= sizeH / 2
	}
	centerX := topLeftX + sizeW/2
	centerY := topLeftY + sizeH/2

	h := &chipmunkBody{
		gravityScale: gravityScale,
		continuous:   bodyComp.Continuous,
		trigger:      bodyComp.Trigger,
		static:       bodyComp.Static,
		centerX:      centerX,
		centerY:      centerY,
	}

	var shape *cp.Shape
	if bodyComp.Static {
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: centerX, Y: centerY})
		} else {
			bb := cp.BB{L: topLeftX, B: topLeftY, R: topLeftX + sizeW, T: topLeftY + sizeH}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		h.body = ps.space.StaticBody
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := math.Inf(1)
		if !bodyComp.FixedAngle {
			if radius > 0 {
				moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
			} else {
				moment = cp.MomentForBox(mass, width, height)
			}
		}
		h.mass, h.moment = mass, moment

		body := cp.NewBody(mass, moment)
		body.SetPosition(cp.Vector{X: centerX, Y: centerY})
		body.SetAngle(rotation)
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, gravity.Mult(h.gravityScale), damping, dt)
		})
		ps.space.AddBody(body)
		if bodyComp.Kinematic {
			body.SetType(cp.BODY_KINEMATIC)
		}
		body.SetVelocity(bodyComp.VelocityX, bodyComp.VelocityY)
		h.body = body

		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetSensor(bodyComp.Trigger)
	shape.SetFilter(layerFilter(layer))
	ps.space.AddShape(shape)
	h.shape = shape

	return h
}

func layerFilter(layer *component.CollisionLayer) cp.ShapeFilter {
	category := uint(component.CategoryDefault)
	mask := ^uint(0)
	if layer != nil {
		if layer.Category != 0 {
			category = uint(layer.Category)
		}
		if layer.Mask != 0 {
			mask = uint(layer.Mask)
		}
	}
	return cp.NewShapeFilter(0, category, mask)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || !w.IsAlive(e) {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.handle.body.Position()
		var px, py float64
		if parent, ok := parentOf(w, e); ok {
			px, py, _ = worldPosition(w, parent)
		}
		transform.X = pos.X - bodyComp.OffsetX - px
		transform.Y = pos.Y - bodyComp.OffsetY - py
		if bodyComp.AlignTopLeft {
			transform.X -= bodyComp.Width / 2.0
			transform.Y -= bodyComp.Height / 2.0
		}
		transform.Rotation = info.handle.body.Angle()

		v := info.handle.body.Velocity()
		bodyComp.VelocityX, bodyComp.VelocityY = v.X, v.Y
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeBody(e, info)
	}
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity, info *bodyInfo) {
	if info != nil && info.handle != nil && ps.space != nil {
		if info.handle.shape != nil {
			ps.space.RemoveShape(info.handle.shape)
			delete(ps.shapes, info.handle.shape)
		}
		if !info.static && info.handle.body != nil {
			ps.space.RemoveBody(info.handle.body)
		}
	}
	delete(ps.entities, e)
}

// chipmunkBody adapts a Chipmunk body and its single shape to
// component.Body.
type chipmunkBody struct {
	body  *cp.Body
	shape *cp.Shape

	mass         float64
	moment       float64
	gravityScale float64
	continuous   bool
	trigger      bool
	static       bool

	// Static shapes hang off the shared static body, so they keep their own
	// centre.
	centerX float64
	centerY float64
}

func (b *chipmunkBody) Position() (float64, float64) {
	if b.static {
		return b.centerX, b.centerY
	}
	p := b.body.Position()
	return p.X, p.Y
}

func (b *chipmunkBody) Velocity() (float64, float64) {
	if b.static {
		return 0, 0
	}
	v := b.body.Velocity()
	return v.X, v.Y
}

func (b *chipmunkBody) SetVelocity(x, y float64) {
	if b.static {
		return
	}
	b.body.SetVelocity(x, y)
}

func (b *chipmunkBody) GravityScale() float64 {
	return b.gravityScale
}

func (b *chipmunkBody) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *chipmunkBody) Dynamic() bool {
	return !b.static && b.body.GetType() == cp.BODY_DYNAMIC
}

func (b *chipmunkBody) SetDynamic(dynamic bool) {
	if b.static || b.Dynamic() == dynamic {
		return
	}
	if !dynamic {
		b.body.SetType(cp.BODY_KINEMATIC)
		return
	}
	v := b.body.Velocity()
	b.body.SetType(cp.BODY_DYNAMIC)
	b.body.SetMass(b.mass)
	b.body.SetMoment(b.moment)
	b.body.SetVelocityVector(v)
}

func (b *chipmunkBody) ApplyImpulse(x, y float64) {
	if !b.Dynamic() {
		log.Printf("physics: impulse ignored on non-dynamic body")
		return
	}
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: x, Y: y}, b.body.Position())
}

func (b *chipmunkBody) Continuous() bool {
	return b.continuous
}

func (b *chipmunkBody) SetContinuous(on bool) {
	b.continuous = on
}

func (b *chipmunkBody) Trigger() bool {
	return b.trigger
}

func (b *chipmunkBody) SetTrigger(trigger bool) {
	b.trigger = trigger
	if b.shape != nil {
		b.shape.SetSensor(trigger)
	}
}
