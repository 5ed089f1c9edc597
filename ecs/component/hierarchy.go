package component

import "strings"

// InstanceSuffix is appended to the name of every entity built from a prefab.
const InstanceSuffix = "(Clone)"

// DefaultTag is the tag every entity carries unless a prefab or level sets one.
const DefaultTag = ""

// Name is the display name of an entity. Prefab instances carry
// InstanceSuffix.
type Name struct {
	Value string
}

// BaseName strips the instance suffix so a prefab instance compares equal to
// the prefab or scene object it was made from.
func (n Name) BaseName() string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(n.Value), InstanceSuffix))
}

var NameComponent = NewComponent[Name]()

// Tag is a coarse category label.
type Tag struct {
	Value string
}

var TagComponent = NewComponent[Tag]()

// Parent links an entity to the entity above it in the scene hierarchy.
type Parent struct {
	Entity uint64 // ecs.Entity
}

var ParentComponent = NewComponent[Parent]()
