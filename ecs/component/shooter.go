package component

// ShootPhase is the step a shoot sequence is in.
type ShootPhase uint8

const (
	ShootIdle ShootPhase = iota
	ShootGunShown
	ShootCooldown
)

// Shooter is the gun of a player-mode actor. At most one sequence runs per
// shooter; Sequence counts started sequences.
type Shooter struct {
	CanShoot     bool
	BulletPrefab string
	VisualTag    string
	SpawnPoint   uint64 // ecs.Entity

	Phase      ShootPhase
	Elapsed    float64
	Sequence   uint64
	GunVisible bool

	// Durations are captured when a sequence starts, so an override applied
	// mid-sequence only affects the next shot.
	GunShowFor  float64
	CooldownFor float64
}

var ShooterComponent = NewComponent[Shooter]()
