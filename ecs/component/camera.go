package component

type Camera struct {
	Target     uint64 // ecs.Entity
	TargetName string
	Zoom       float64
	Smoothness float64
	OffsetX    float64
	OffsetY    float64
	ViewWidth  float64
	ViewHeight float64
}

var CameraComponent = NewComponent[Camera]()
