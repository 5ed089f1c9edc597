package entity

import (
	"log"
	"strings"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// ResolveExclusions turns pending exclusion names into entity references.
// Each name picks the first entity whose base name, then tag, matches. The
// matcher compares names and tags itself, so one entry covers every entity
// sharing them. It returns the number of entries written.
func ResolveExclusions(w *ecs.World) int {
	if w == nil {
		return 0
	}
	resolved := 0
	ecs.ForEach(w, component.ExclusionNamesComponent.Kind(), func(e ecs.Entity, pending *component.ExclusionNames) {
		list, ok := ecs.Get(w, e, component.ExclusionListComponent.Kind())
		if !ok {
			list = &component.ExclusionList{}
			if err := ecs.Add(w, e, component.ExclusionListComponent.Kind(), list); err != nil {
				log.Printf("entity: exclusions for %s: %v", e, err)
				return
			}
		}
		for _, name := range pending.Names {
			target, ok := lookupByNameOrTag(w, name)
			if !ok {
				log.Printf("entity: exclusion %q for %s matches nothing", name, e)
				continue
			}
			if list.Contains(uint64(target)) {
				continue
			}
			if _, err := list.Add(uint64(target)); err != nil {
				log.Printf("entity: exclusion %q for %s: %v", name, e, err)
				break
			}
			resolved++
		}
		ecs.Remove(w, e, component.ExclusionNamesComponent.Kind())
	})
	return resolved
}

func lookupByNameOrTag(w *ecs.World, name string) (ecs.Entity, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.BaseName() == name {
			found = e
		}
	})
	if found.Valid() {
		return found, true
	}
	ecs.ForEach(w, component.TagComponent.Kind(), func(e ecs.Entity, t *component.Tag) {
		if !found.Valid() && t.Value != component.DefaultTag && t.Value == name {
			found = e
		}
	})
	return found, found.Valid()
}
