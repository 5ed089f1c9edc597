package component

// EffectKind is the single override an effect area applies.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectReloadOverride
	EffectMaxHitsOverride
	EffectLifetimeOverride
)

func (k EffectKind) String() string {
	switch k {
	case EffectReloadOverride:
		return "reload"
	case EffectMaxHitsOverride:
		return "max_hits"
	case EffectLifetimeOverride:
		return "lifetime"
	default:
		return "none"
	}
}

// ParseEffectKind maps level/prefab names to kinds. Unknown names are
// EffectNone.
func ParseEffectKind(s string) EffectKind {
	switch s {
	case "reload", "reload_override":
		return EffectReloadOverride
	case "max_hits", "max_hits_override":
		return EffectMaxHitsOverride
	case "lifetime", "lifetime_override":
		return EffectLifetimeOverride
	default:
		return EffectNone
	}
}

// EffectArea overrides actor tuning while an actor overlaps it. The saved map
// holds one snapshot per actor currently inside; having a snapshot and being
// inside are the same thing.
type EffectArea struct {
	Kind           EffectKind
	ReloadCooldown float64
	MaxHits        int
	Lifetime       float64
	// FallLifetime is only written by a lifetime override when positive.
	FallLifetime float64
	Disabled     bool

	saved map[uint64]ParamSnapshot
}

// Inside reports whether actor is recorded inside the area.
func (a *EffectArea) Inside(actor uint64) bool {
	if a == nil || a.saved == nil {
		return false
	}
	_, ok := a.saved[actor]
	return ok
}

// Occupants returns the actors currently inside.
func (a *EffectArea) Occupants() []uint64 {
	if a == nil {
		return nil
	}
	out := make([]uint64, 0, len(a.saved))
	for e := range a.saved {
		out = append(out, e)
	}
	return out
}

// Enter snapshots params and applies the override. A second Enter for an
// actor already inside is ignored and reports false.
func (a *EffectArea) Enter(actor uint64, params *ActorParams) bool {
	if a == nil || params == nil || a.Disabled || a.Inside(actor) {
		return false
	}
	if a.saved == nil {
		a.saved = make(map[uint64]ParamSnapshot)
	}
	a.saved[actor] = params.Snapshot()
	a.apply(params)
	return true
}

func (a *EffectArea) apply(params *ActorParams) {
	switch a.Kind {
	case EffectReloadOverride:
		params.ShootCooldown = a.ReloadCooldown
	case EffectMaxHitsOverride:
		params.Bullet.MaxHits = a.MaxHits
	case EffectLifetimeOverride:
		params.Bullet.Lifetime = a.Lifetime
		if a.FallLifetime > 0 {
			params.Bullet.FallLifetime = a.FallLifetime
		}
	}
}

// Exit restores the saved snapshot verbatim and forgets it. Without a
// snapshot it does nothing and reports false. A nil params still forgets
// the record, which is how dead actors are pruned.
func (a *EffectArea) Exit(actor uint64, params *ActorParams) bool {
	if a == nil || !a.Inside(actor) {
		return false
	}
	snap := a.saved[actor]
	delete(a.saved, actor)
	if params != nil {
		params.Restore(snap)
	}
	return true
}

// RestoreAll exits every actor still inside. lookup resolves an actor to its
// params and may return nil for actors that no longer exist.
func (a *EffectArea) RestoreAll(lookup func(actor uint64) *ActorParams) int {
	if a == nil {
		return 0
	}
	n := 0
	for _, actor := range a.Occupants() {
		var params *ActorParams
		if lookup != nil {
			params = lookup(actor)
		}
		if a.Exit(actor, params) {
			n++
		}
	}
	return n
}

var EffectAreaComponent = NewComponent[EffectArea]()
