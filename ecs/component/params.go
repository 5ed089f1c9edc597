package component

// BulletTuning is copied into every bullet at spawn, so later changes to the
// shooter never reach bullets already in flight.
type BulletTuning struct {
	Speed            float64
	Lifetime         float64
	MaxHits          int
	FallLifetime     float64
	FallGravityScale float64

	RecoilEnabled bool
	RecoilForce   float64
	RecoilUpBias  float64

	HitImpulse     float64
	StillThreshold float64
	StillDuration  float64
	DestroyDelay   float64
}

// ActorParams is the mutable tuning an actor shoots with. Effect areas
// override and restore a subset of it.
type ActorParams struct {
	ShootCooldown   float64
	GunShowDuration float64
	Bullet          BulletTuning
}

// ParamSnapshot holds the fields an effect area may override.
type ParamSnapshot struct {
	ShootCooldown float64
	MaxHits       int
	Lifetime      float64
	FallLifetime  float64
}

func (p *ActorParams) Snapshot() ParamSnapshot {
	return ParamSnapshot{
		ShootCooldown: p.ShootCooldown,
		MaxHits:       p.Bullet.MaxHits,
		Lifetime:      p.Bullet.Lifetime,
		FallLifetime:  p.Bullet.FallLifetime,
	}
}

func (p *ActorParams) Restore(s ParamSnapshot) {
	p.ShootCooldown = s.ShootCooldown
	p.Bullet.MaxHits = s.MaxHits
	p.Bullet.Lifetime = s.Lifetime
	p.Bullet.FallLifetime = s.FallLifetime
}

var ActorParamsComponent = NewComponent[ActorParams]()
