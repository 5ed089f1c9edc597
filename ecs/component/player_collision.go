package component

// PlayerCollision stores per-player collision state derived from the ground
// overlap query.
type PlayerCollision struct {
	Grounded bool
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
