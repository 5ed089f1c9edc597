package component

// Movement holds the run/jump tuning of a player-mode actor. Screen
// coordinates: +Y points down, so a jump sets a negative vertical velocity.
type Movement struct {
	MoveSpeed         float64
	JumpForce         float64
	FallMultiplier    float64
	LowJumpMultiplier float64

	GroundCheckX      float64
	GroundCheckY      float64
	GroundCheckRadius float64
	GroundMask        uint32
}

var MovementComponent = NewComponent[Movement]()

// Facing is +1 when facing right and -1 when facing left.
type Facing struct {
	Dir float64
}

func (f Facing) Sign() float64 {
	if f.Dir < 0 {
		return -1
	}
	return 1
}

var FacingComponent = NewComponent[Facing]()
