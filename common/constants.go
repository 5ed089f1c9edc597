package common

const (
	BaseWidth  = 640
	BaseHeight = 360

	// Gravity is in pixels per second squared; +Y points down.
	Gravity = 1800.0

	TileSize = 32
)
