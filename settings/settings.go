package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name the settings are stored under.
const AppName = "shootscroller"

const (
	bindingsObject   = "input"
	bindingsProperty = "bindings"
)

// Bindings maps logical actions to controller buttons and axes. Buttons and
// axes use ebiten's standard gamepad layout indices.
type Bindings struct {
	MoveAxis    int `yaml:"moveAxis"`
	JumpButton  int `yaml:"jumpButton"`
	ShootButton int `yaml:"shootButton"`
	PauseButton int `yaml:"pauseButton"`
}

// DefaultBindings uses the left stick, bottom face button to jump and left
// face button to shoot.
func DefaultBindings() Bindings {
	return Bindings{
		MoveAxis:    0, // StandardGamepadAxisLeftStickHorizontal
		JumpButton:  0, // StandardGamepadButtonRightBottom
		ShootButton: 2, // StandardGamepadButtonRightLeft
		PauseButton: 9, // StandardGamepadButtonCenterRight
	}
}

// Store loads and saves bindings. A nil gdata manager keeps everything in
// memory.
type Store struct {
	data     *gdata.Manager
	bindings Bindings
}

// Open opens the platform data directory for AppName. When that fails the
// store still works, it just cannot persist.
func Open() *Store {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("settings: open data dir: %v (not persisting)", err)
		m = nil
	}
	return NewStore(m)
}

func NewStore(m *gdata.Manager) *Store {
	s := &Store{data: m, bindings: DefaultBindings()}
	if err := s.Load(); err != nil {
		log.Printf("settings: %v (using defaults)", err)
	}
	return s
}

func (s *Store) Bindings() Bindings {
	return s.bindings
}

func (s *Store) SetBindings(b Bindings) {
	s.bindings = b
}

func (s *Store) Load() error {
	s.bindings = DefaultBindings()
	if s.data == nil || !s.data.ObjectPropExists(bindingsObject, bindingsProperty) {
		return nil
	}
	raw, err := s.data.LoadObjectProp(bindingsObject, bindingsProperty)
	if err != nil {
		return fmt.Errorf("load bindings: %w", err)
	}
	b := DefaultBindings()
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return fmt.Errorf("decode bindings: %w", err)
	}
	s.SetBindings(b)
	return nil
}

func (s *Store) Save() error {
	if s.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(s.bindings)
	if err != nil {
		return fmt.Errorf("encode bindings: %w", err)
	}
	if err := s.data.SaveObjectProp(bindingsObject, bindingsProperty, raw); err != nil {
		return fmt.Errorf("save bindings: %w", err)
	}
	return nil
}
