package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

var gunColor = color.NRGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY, zoom := cameraView(w, r.camEntity)

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		if e == r.camEntity {
			continue
		}
		x, y, ok := worldPosition(w, e)
		if !ok {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}

		if s.Image == nil {
			sx, sy := scaleOf(t)
			rw, rh := s.Width*sx, s.Height*sy
			left := (x - s.OriginX*sx - camX) * zoom
			top := (y - s.OriginY*sy - camY) * zoom
			vector.DrawFilledRect(screen, float32(left), float32(top), float32(rw*zoom), float32(rh*zoom), s.Color, false)
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		sx, sy := scaleOf(t)
		if s.FacingLeft {
			sx = -sx
			op.GeoM.Translate(float64(-img.Bounds().Dx()), 0)
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((x-camX)*zoom, (y-camY)*zoom)
		screen.DrawImage(img, op)
	}

	r.drawGuns(w, screen, camX, camY, zoom)
}

// drawGuns draws the gun of every shooter that is mid-shot.
func (r *RenderSystem) drawGuns(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	ecs.ForEach(w, component.ShooterComponent.Kind(), func(e ecs.Entity, sh *component.Shooter) {
		if !sh.GunVisible {
			return
		}
		x, y, ok := worldPosition(w, e)
		if !ok {
			return
		}
		dir := 1.0
		if f, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
			dir = f.Sign()
		}
		const gunW, gunH = 14.0, 5.0
		left := x + dir*8
		if dir < 0 {
			left -= gunW
		}
		vector.DrawFilledRect(screen,
			float32((left-camX)*zoom), float32((y-2-camY)*zoom),
			float32(gunW*zoom), float32(gunH*zoom), gunColor, false)
	})
}

func scaleOf(t *component.Transform) (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}
