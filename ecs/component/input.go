package component

// Input stores per-frame input state for an entity. The *Pressed fields are
// edge latches: the input system sets them, the consumer clears them.
type Input struct {
	MoveX        float64
	Jump         bool
	JumpPressed  bool
	Shoot        bool
	ShootPressed bool
}

var InputComponent = NewComponent[Input]()
