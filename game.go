package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/shootscroller/common"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/entity"
	"github.com/milk9111/shootscroller/ecs/system"
	"github.com/milk9111/shootscroller/levels"
	"github.com/milk9111/shootscroller/prefabs"
	"github.com/milk9111/shootscroller/settings"
)

const defaultLevel = "range.json"

type Game struct {
	frames int
	debug  bool
	paused bool
	quit   bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	render    *system.RenderSystem
	input     *system.EbitenInput
	pauseUI   *ebitenui.UI
	watcher   *prefabs.Watcher
	store     *settings.Store
	levelName string
}

type GameOptions struct {
	Level string
	Debug bool
	Watch bool
}

func NewGame(opts GameOptions) (*Game, error) {
	store := settings.Open()

	g := &Game{
		debug:     opts.Debug,
		input:     system.NewEbitenInput(store.Bindings()),
		store:     store,
		levelName: levelFileName(opts.Level),
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.reset()
	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	return g, nil
}

// reset builds a fresh world and a fresh set of systems, so no system keeps
// entity ids from a previous world.
func (g *Game) reset() {
	g.world = ecs.NewWorld()
	g.scheduler = ecs.NewScheduler(ecs.DefaultFixedStep)
	g.physics = system.NewPhysicsSystem()
	g.render = system.NewRenderSystem()

	g.scheduler.AddFrame(system.NewInputSystem(g.input))
	g.scheduler.AddFrame(system.NewShootSystem(entity.PrefabSpawner{}))
	g.scheduler.AddFrame(system.NewBulletTimerSystem())
	g.scheduler.AddFrame(system.NewLifetimeSystem())
	g.scheduler.AddFrame(system.NewSettleMonitorSystem())
	g.scheduler.AddFrame(system.NewCameraSystem())
	if g.watcher != nil {
		g.scheduler.AddFrame(system.NewPrefabReloadSystem(g.watcher, "player.yaml"))
	}

	g.scheduler.AddFixed(system.NewPlayerControllerSystem(g.physics, g.physics.Gravity()))
	g.scheduler.AddFixed(g.physics)
	g.scheduler.AddFixed(system.NewBulletSystem())
	g.scheduler.AddFixed(system.NewEffectAreaSystem())
}

func levelFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultLevel
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}

func (g *Game) loadLevel() error {
	lvl, err := levels.LoadLevelFromFS(g.levelName)
	if err != nil {
		return fmt.Errorf("load level %s: %w (have %v)", g.levelName, err, levels.List())
	}
	if err := entity.LoadLevelToWorld(g.world, lvl); err != nil {
		return err
	}
	return nil
}

// Restart rebuilds the world from the level file.
func (g *Game) Restart() {
	g.reset()
	if err := g.loadLevel(); err != nil {
		log.Printf("restart: %v", err)
	}
	g.paused = false
}

func (g *Game) Update() error {
	g.frames++

	if g.quit {
		if err := g.store.Save(); err != nil {
			log.Printf("settings: %v", err)
		}
		return ebiten.Termination
	}

	if g.input.PausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.scheduler.Update(g.world, dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		system.DrawActorDebug(g.world, screen)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
