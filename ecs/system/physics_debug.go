package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// Shape colours by collision category. Earlier entries win when a shape
// carries several bits.
var categoryDebugColors = []struct {
	category uint32
	color    cp.FColor
}{
	{component.CategoryBullet, cp.FColor{R: 1, G: 0.9, B: 0.2, A: 0.9}},
	{component.CategoryActor, cp.FColor{R: 0.3, G: 0.9, B: 1, A: 0.8}},
	{component.CategoryArea, cp.FColor{R: 0.7, G: 0.4, B: 1, A: 0.5}},
	{component.CategoryProp, cp.FColor{R: 0.9, G: 0.6, B: 0.3, A: 0.7}},
	{component.CategoryGround, cp.FColor{R: 0.5, G: 0.5, B: 0.55, A: 0.6}},
}

var defaultDebugColor = cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}

func categoryDebugColor(categories uint32) cp.FColor {
	for _, c := range categoryDebugColors {
		if categories&c.category != 0 {
			return c.color
		}
	}
	return defaultDebugColor
}

// DrawPhysicsDebug outlines every collider coloured by category and labels
// each bullet with its hit count and phase.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	var cam ecs.Entity
	if e, ok := w.First(component.CameraComponent.Kind()); ok {
		cam = e
	}
	camX, camY, zoom := cameraView(w, cam)
	drawer := &physicsDebugDrawer{screen: screen, camX: camX, camY: camY, zoom: zoom}
	cp.DrawSpace(space, drawer)

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bullet, t *component.Transform) {
		x, y := drawer.toScreen(cp.Vector{X: t.X, Y: t.Y})
		ebitenutil.DebugPrintAt(screen, bulletDebugLabel(b), int(x)+6, int(y)-18)
	})
}

func bulletDebugLabel(b *component.Bullet) string {
	if b.Tuning.MaxHits <= 0 {
		return fmt.Sprintf("%d/inf %s", b.HitCount, b.Phase)
	}
	return fmt.Sprintf("%d/%d %s", b.HitCount, b.Tuning.MaxHits, b.Phase)
}

// DrawActorDebug prints the first player's mode, gate and tuning, plus the
// live bullet count.
func DrawActorDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player := findEntityByNameOrTag(w, "player")
	if !player.Valid() {
		return
	}
	grounded := false
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = pc.Grounded
	}
	canShoot := false
	if sh, ok := ecs.Get(w, player, component.ShooterComponent.Kind()); ok {
		canShoot = sh.CanShoot
	}
	var params component.ActorParams
	if p, ok := ecs.Get(w, player, component.ActorParamsComponent.Kind()); ok {
		params = *p
	}
	bullets := 0
	ecs.ForEach(w, component.BulletComponent.Kind(), func(ecs.Entity, *component.Bullet) {
		bullets++
	})
	text := fmt.Sprintf("Grounded: %v\nCanShoot: %v\nCooldown: %.2f\nMaxHits: %d\nLifetime: %.2f\nFallLifetime: %.2f\nBullets: %d",
		grounded, canShoot, params.ShootCooldown, params.Bullet.MaxHits, params.Bullet.Lifetime, params.Bullet.FallLifetime, bullets)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// physicsDebugDrawer implements cp.Drawer onto an ebiten image in camera
// space.
type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, fill)
	d.drawLine(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, fill)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
	d.drawCircle(a, radius, fill)
	d.drawCircle(b, radius, fill)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 || count > len(verts) {
		return
	}
	d.drawPolygon(verts[:count], fill)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return defaultDebugColor
}

// ShapeColor is the fill passed back into the Draw calls above, so outlines
// follow the shape's category.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return defaultDebugColor
	}
	return categoryDebugColor(uint32(shape.Filter.Categories))
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(c))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, debugCircleSegments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / debugCircleSegments
		points[i] = cp.Vector{X: center.X + math.Cos(a)*radius, Y: center.Y + math.Sin(a)*radius}
	}
	d.drawPolygon(points, c)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return (v.X - d.camX) * d.zoom, (v.Y - d.camY) * d.zoom
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	return float32(math.Max(0, math.Min(1, float64(v))))
}
