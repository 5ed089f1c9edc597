package component

//go:generate go tool mockgen -destination=mocks/mock_destructible.go -package=mocks github.com/milk9111/shootscroller/ecs/component Destructible

// Destructible lets a target take over what happens when a bullet spends its
// last hit on it. Targets without one get the default fling-and-settle.
type Destructible interface {
	// OnHitByBullet is called with the bullet entity and its velocity at
	// impact.
	OnHitByBullet(bullet uint64, velocityX, velocityY float64)
	// ConvertHittingBulletToFalling lets the target adjust the bullet as it
	// starts to fall.
	ConvertHittingBulletToFalling(bullet uint64)
}

// DestructibleTarget attaches a Destructible to an entity.
type DestructibleTarget struct {
	Handler Destructible
}

var DestructibleTargetComponent = NewComponent[DestructibleTarget]()
