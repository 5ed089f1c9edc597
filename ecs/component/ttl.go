package component

// Lifetime destroys its entity once Remaining seconds have elapsed.
type Lifetime struct {
	Remaining float64
}

var LifetimeComponent = NewComponent[Lifetime]()
