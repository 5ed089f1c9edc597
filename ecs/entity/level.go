package entity

import (
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/shootscroller/common"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
	"github.com/milk9111/shootscroller/levels"
	"github.com/milk9111/shootscroller/prefabs"
)

const groundPrefab = "ground.yaml"

// LoadLevelToWorld builds ground from the tile layers, places the level
// entities, links parents and resolves exclusion lists.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}

	tileSize := float64(common.TileSize)
	boundsEntity := world.CreateEntity()
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width) * tileSize,
		Height: float64(lvl.Height) * tileSize,
	}); err != nil {
		return err
	}

	for layerIdx, layer := range lvl.Layers {
		var meta levels.LayerMeta
		if layerIdx < len(lvl.LayerMeta) {
			meta = lvl.LayerMeta[layerIdx]
		}
		if err := addMergedTileBlocks(world, layer, lvl.Width, lvl.Height, tileSize, layerIdx, meta); err != nil {
			return fmt.Errorf("load level: layer %d: %w", layerIdx, err)
		}
	}

	named := make(map[string]ecs.Entity)
	type pendingParent struct {
		child  ecs.Entity
		parent string
	}
	var parents []pendingParent

	for i, ent := range lvl.Entities {
		e, err := placeEntity(world, ent)
		if err != nil {
			return fmt.Errorf("load level: entity %d (%s): %w", i, ent.Type, err)
		}
		if !e.Valid() {
			continue
		}
		if name := strings.TrimSpace(ent.String("name", "")); name != "" {
			named[name] = e
		}
		if p := strings.TrimSpace(ent.String("parent", "")); p != "" {
			parents = append(parents, pendingParent{child: e, parent: p})
		}
	}

	for _, pp := range parents {
		parent, ok := named[pp.parent]
		if !ok {
			log.Printf("entity: parent %q not found", pp.parent)
			continue
		}
		if err := attachToParent(world, pp.child, parent); err != nil {
			return fmt.Errorf("load level: parent %q: %w", pp.parent, err)
		}
	}

	ResolveExclusions(world)
	return nil
}

func placeEntity(world *ecs.World, ent levels.Entity) (ecs.Entity, error) {
	x, y := float64(ent.X), float64(ent.Y)
	switch strings.ToLower(ent.Type) {
	case "player":
		return NewPlayerAt(world, x, y)
	case "camera":
		return NewCameraAt(world, x, y)
	case "":
		return 0, fmt.Errorf("missing type")
	}

	e, err := BuildEntity(world, strings.ToLower(ent.Type)+".yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(world, e, x, y, 0); err != nil {
		return 0, err
	}
	if err := applyProps(world, e, ent); err != nil {
		destroyBuilt(world, e)
		return 0, err
	}
	return e, nil
}

// applyProps overrides prefab values with the level's per-entity props.
func applyProps(world *ecs.World, e ecs.Entity, ent levels.Entity) error {
	if name := strings.TrimSpace(ent.String("name", "")); name != "" {
		// Level objects keep their own name, without the instance suffix.
		if err := ecs.Add(world, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
			return err
		}
	}
	if ent.Has("tag") {
		if err := ecs.Add(world, e, component.TagComponent.Kind(), &component.Tag{Value: strings.TrimSpace(ent.String("tag", ""))}); err != nil {
			return err
		}
	}

	if ent.Has("width") || ent.Has("height") {
		if pb, ok := ecs.Get(world, e, component.PhysicsBodyComponent.Kind()); ok {
			pb.Width = ent.Float("width", pb.Width)
			pb.Height = ent.Float("height", pb.Height)
		}
		if sp, ok := ecs.Get(world, e, component.SpriteComponent.Kind()); ok {
			centered := sp.OriginX == sp.Width/2 && sp.OriginY == sp.Height/2 && sp.Width > 0
			sp.Width = ent.Float("width", sp.Width)
			sp.Height = ent.Float("height", sp.Height)
			if centered {
				sp.OriginX, sp.OriginY = sp.Width/2, sp.Height/2
			}
		}
	}
	if c := ent.String("color", ""); c != "" {
		col, err := prefabs.ParseHexColor(c)
		if err != nil {
			return err
		}
		if sp, ok := ecs.Get(world, e, component.SpriteComponent.Kind()); ok {
			sp.Color = col
		}
	}

	if area, ok := ecs.Get(world, e, component.EffectAreaComponent.Kind()); ok {
		if ent.Has("kind") {
			area.Kind = component.ParseEffectKind(strings.TrimSpace(ent.String("kind", "")))
		}
		area.ReloadCooldown = ent.Float("reload_cooldown", area.ReloadCooldown)
		area.MaxHits = int(ent.Float("max_hits", float64(area.MaxHits)))
		area.Lifetime = ent.Float("lifetime", area.Lifetime)
		area.FallLifetime = ent.Float("fall_lifetime", area.FallLifetime)
		area.Disabled = ent.Bool("disabled", area.Disabled)
	}
	return nil
}

// attachToParent parents child under parent and rewrites the child's
// transform as an offset, keeping its world position.
func attachToParent(world *ecs.World, child, parent ecs.Entity) error {
	if child == parent {
		return fmt.Errorf("entity cannot parent itself")
	}
	ct, ok := ecs.Get(world, child, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("child has no transform")
	}
	if pt, ok := ecs.Get(world, parent, component.TransformComponent.Kind()); ok {
		ct.X -= pt.X
		ct.Y -= pt.Y
	}
	return ecs.Add(world, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)})
}

// addMergedTileBlocks covers the filled cells of a layer with as few
// rectangles as it can, growing each run right then down. Physics layers
// become ground entities; other layers are drawn only.
func addMergedTileBlocks(world *ecs.World, layer []int, width, height int, tileSize float64, layerIdx int, meta levels.LayerMeta) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	filled := func(idx int) bool {
		return idx < len(layer) && !visited[idx] && layer[idx] > 0
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !filled(index(x, y)) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && filled(index(x2, y)); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !filled(index(x2, y2)) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			if err := addTileBlock(world, float64(x)*tileSize, float64(y)*tileSize, float64(maxW)*tileSize, float64(maxH)*tileSize, layerIdx, meta); err != nil {
				return err
			}
		}
	}

	return nil
}

func addTileBlock(world *ecs.World, x, y, w, h float64, layerIdx int, meta levels.LayerMeta) error {
	e, err := BuildEntity(world, groundPrefab)
	if err != nil {
		return err
	}
	if err := SetEntityTransform(world, e, x, y, 0); err != nil {
		return err
	}
	if err := ecs.Add(world, e, component.GroundTagComponent.Kind(), &component.GroundTag{}); err != nil {
		return err
	}
	if err := ecs.Add(world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layerIdx}); err != nil {
		return err
	}
	if sp, ok := ecs.Get(world, e, component.SpriteComponent.Kind()); ok {
		sp.Width, sp.Height = w, h
		if meta.Color != "" {
			col, err := prefabs.ParseHexColor(meta.Color)
			if err != nil {
				return err
			}
			sp.Color = col
		}
	}
	if !meta.Physics {
		ecs.Remove(world, e, component.PhysicsBodyComponent.Kind())
		return nil
	}
	if pb, ok := ecs.Get(world, e, component.PhysicsBodyComponent.Kind()); ok {
		pb.Width, pb.Height = w, h
	}
	return nil
}
