package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// GroundTag marks static level geometry.
type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()

// SpawnPointTag marks the child entity bullets are spawned from.
type SpawnPointTag struct{}

var SpawnPointTagComponent = NewComponent[SpawnPointTag]()
