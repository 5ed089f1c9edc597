package component

// SettleMonitor destroys its entity once the body has stayed below Threshold
// speed for StillDuration seconds, followed by ExtraDelay more seconds.
// Exclusions and Owner are the protecting bullet's view at the time of the
// hit and are re-checked before destruction.
type SettleMonitor struct {
	Threshold     float64
	StillDuration float64
	ExtraDelay    float64

	StillElapsed float64
	DelayElapsed float64
	Waiting      bool

	Exclusions ExclusionList
	Owner      uint64 // ecs.Entity
}

var SettleMonitorComponent = NewComponent[SettleMonitor]()
