package component

// Body is the per-actor physics handle the gameplay systems drive. The
// physics system backs it with a Chipmunk body.
type Body interface {
	Position() (x, y float64)
	Velocity() (x, y float64)
	SetVelocity(x, y float64)
	GravityScale() float64
	SetGravityScale(scale float64)
	Dynamic() bool
	SetDynamic(dynamic bool)
	ApplyImpulse(x, y float64)
	Continuous() bool
	SetContinuous(on bool)
	Trigger() bool
	SetTrigger(trigger bool)
}

// PhysicsBody stores the collider configuration and, once the physics system
// has created it, the runtime Body. VelocityX/VelocityY seed the body when it
// is created.
type PhysicsBody struct {
	Body         Body
	Width        float64
	Height       float64
	Radius       float64
	Mass         float64
	Friction     float64
	Elasticity   float64
	OffsetX      float64
	OffsetY      float64
	Static       bool
	Kinematic    bool
	Trigger      bool
	Continuous   bool
	FixedAngle   bool
	AlignTopLeft bool
	VelocityX    float64
	VelocityY    float64
}

// Velocity returns the live body velocity, or the seed velocity when the body
// has not been created yet.
func (p *PhysicsBody) Velocity() (float64, float64) {
	if p == nil {
		return 0, 0
	}
	if p.Body != nil {
		return p.Body.Velocity()
	}
	return p.VelocityX, p.VelocityY
}

// SetVelocity updates the live body and the seed.
func (p *PhysicsBody) SetVelocity(x, y float64) {
	if p == nil {
		return
	}
	p.VelocityX, p.VelocityY = x, y
	if p.Body != nil {
		p.Body.SetVelocity(x, y)
	}
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
