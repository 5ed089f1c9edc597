package system

import (
	"github.com/milk9111/shootscroller/common"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera's top-left corner towards its target, clamped to
// the level bounds.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		cs.camEntity = 0
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			cs.camEntity = camEntity
		}
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = 0
		if t := ecs.Entity(camComp.Target); t.Valid() && w.IsAlive(t) {
			cs.targetEntity = t
		} else if t := findEntityByNameOrTag(w, camComp.TargetName); t.Valid() {
			cs.targetEntity = t
		}
	}

	tx, ty, ok := worldPosition(w, cs.targetEntity)
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := camComp.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW, viewH := camComp.ViewWidth, camComp.ViewHeight
	if viewW <= 0 || viewH <= 0 {
		viewW, viewH = common.BaseWidth, common.BaseHeight
	}
	viewW /= zoom
	viewH /= zoom

	goalX := tx + camComp.OffsetX - viewW/2
	goalY := ty + camComp.OffsetY - viewH/2

	if bounds, ok := cs.bounds(w); ok {
		goalX = common.Clamp(goalX, 0, bounds.Width-viewW)
		goalY = common.Clamp(goalY, 0, bounds.Height-viewH)
	}

	t := 1.0
	if camComp.Smoothness > 0 {
		t = common.Clamp(w.DeltaTime()*camComp.Smoothness, 0, 1)
	}
	camTransform.X = common.Lerp(camTransform.X, goalX, t)
	camTransform.Y = common.Lerp(camTransform.Y, goalY, t)
}

func (cs *CameraSystem) bounds(w *ecs.World) (*component.LevelBounds, bool) {
	e, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.LevelBoundsComponent.Kind())
}

// cameraView returns the camera's top-left world position and zoom. A missing
// camera views the world origin at 1x.
func cameraView(w *ecs.World, cam ecs.Entity) (x, y, zoom float64) {
	zoom = 1
	if t, ok := ecs.Get(w, cam, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}
	if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		zoom = c.Zoom
	}
	return x, y, zoom
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" {
		return 0
	}
	if name == "player" {
		var found ecs.Entity
		ecs.ForEach(w, component.ActorComponent.Kind(), func(e ecs.Entity, a *component.Actor) {
			if !found.Valid() && a.IsPlayer() {
				found = e
			}
		})
		if found.Valid() {
			return found
		}
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.BaseName() == name {
			found = e
		}
	})
	if found.Valid() {
		return found
	}
	ecs.ForEach(w, component.TagComponent.Kind(), func(e ecs.Entity, t *component.Tag) {
		if !found.Valid() && t.Value == name {
			found = e
		}
	})
	return found
}
