package component

type BulletPhase uint8

const (
	BulletFlying BulletPhase = iota
	BulletSettling
	BulletDestroyed
)

func (p BulletPhase) String() string {
	switch p {
	case BulletSettling:
		return "settling"
	case BulletDestroyed:
		return "destroyed"
	default:
		return "flying"
	}
}

// Bullet is the lifecycle state of a bullet-mode actor.
type Bullet struct {
	Owner     uint64 // ecs.Entity; never a collision target
	VisualTag string
	Tuning    BulletTuning

	HitCount         int
	LifeTimer        float64
	LastHitProcessed bool
	Phase            BulletPhase
}

// WillBeLastHit reports whether one more counted hit exhausts the budget.
func (b *Bullet) WillBeLastHit() bool {
	return b.Tuning.MaxHits > 0 && b.HitCount+1 >= b.Tuning.MaxHits
}

var BulletComponent = NewComponent[Bullet]()
