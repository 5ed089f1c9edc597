package component

import "errors"

var ErrModeLocked = errors.New("actor: mode already fixed")

// ActorMode selects which behaviour an actor runs.
type ActorMode uint8

const (
	ModeInert ActorMode = iota
	ModePlayer
	ModeBullet
)

func (m ActorMode) String() string {
	switch m {
	case ModePlayer:
		return "player"
	case ModeBullet:
		return "bullet"
	default:
		return "inert"
	}
}

// Actor is the mode tag shared by players and bullets. The mode is chosen by
// the entity builders and cannot be flipped between player and bullet
// afterwards, so an actor is never both.
type Actor struct {
	mode ActorMode
}

func NewActor(mode ActorMode) Actor {
	return Actor{mode: mode}
}

func (a Actor) Mode() ActorMode { return a.mode }
func (a Actor) IsPlayer() bool  { return a.mode == ModePlayer }
func (a Actor) IsBullet() bool  { return a.mode == ModeBullet }

// BecomeBullet switches an inert actor (or re-arms a bullet) into bullet
// mode. Players are rejected.
func (a *Actor) BecomeBullet() error {
	if a == nil {
		return ErrNilComponent
	}
	if a.mode == ModePlayer {
		return ErrModeLocked
	}
	a.mode = ModeBullet
	return nil
}

var ActorComponent = NewComponent[Actor]()
