package system

import (
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// maxHierarchyDepth bounds parent walks so a malformed parent chain cannot
// loop forever.
const maxHierarchyDepth = 64

func parentOf(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	p, ok := ecs.Get(w, e, component.ParentComponent.Kind())
	if !ok || p.Entity == 0 {
		return 0, false
	}
	parent := ecs.Entity(p.Entity)
	if !w.IsAlive(parent) {
		return 0, false
	}
	return parent, true
}

// rootOf returns the top-most live ancestor of e, or e itself.
func rootOf(w *ecs.World, e ecs.Entity) ecs.Entity {
	cur := e
	for i := 0; i < maxHierarchyDepth; i++ {
		p, ok := parentOf(w, cur)
		if !ok {
			break
		}
		cur = p
	}
	return cur
}

// isAncestor reports whether ancestor sits strictly above e.
func isAncestor(w *ecs.World, ancestor, e ecs.Entity) bool {
	cur := e
	for i := 0; i < maxHierarchyDepth; i++ {
		p, ok := parentOf(w, cur)
		if !ok {
			return false
		}
		if p == ancestor {
			return true
		}
		cur = p
	}
	return false
}

// related reports whether a and b are the same entity, one is an ancestor of
// the other, or both hang off the same root.
func related(w *ecs.World, a, b ecs.Entity) bool {
	if a == b {
		return true
	}
	if isAncestor(w, a, b) || isAncestor(w, b, a) {
		return true
	}
	return rootOf(w, a) == rootOf(w, b)
}

func childrenOf(w *ecs.World, e ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.ParentComponent.Kind(), func(child ecs.Entity, p *component.Parent) {
		if ecs.Entity(p.Entity) == e {
			out = append(out, child)
		}
	})
	return out
}

// worldPosition resolves a transform through its parents. Children store an
// offset from their parent.
func worldPosition(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	x, y := t.X, t.Y
	cur := e
	for i := 0; i < maxHierarchyDepth; i++ {
		p, ok := parentOf(w, cur)
		if !ok {
			break
		}
		pt, ok := ecs.Get(w, p, component.TransformComponent.Kind())
		if !ok {
			break
		}
		x += pt.X
		y += pt.Y
		cur = p
	}
	return x, y, true
}

// DestroyTree destroys e and every descendant. Effect areas in the tree
// restore the actors still inside them first.
func DestroyTree(w *ecs.World, e ecs.Entity) int {
	if w == nil || !w.IsAlive(e) {
		return 0
	}
	n := 0
	for _, child := range childrenOf(w, e) {
		n += DestroyTree(w, child)
	}
	TeardownEffectArea(w, e)
	if w.DestroyEntity(e) {
		n++
	}
	return n
}
