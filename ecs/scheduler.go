package ecs

const (
	DefaultFixedStep = 1.0 / 60.0
	maxCatchUpSteps  = 5
)

// Scheduler drives two clocks: frame systems run once per Update with the
// frame delta, fixed systems run zero or more times with FixedStep.
type Scheduler struct {
	frame []System
	fixed []System

	FixedStep   float64
	accumulator float64
}

func NewScheduler(fixedStep float64) *Scheduler {
	if fixedStep <= 0 {
		fixedStep = DefaultFixedStep
	}
	return &Scheduler{FixedStep: fixedStep}
}

// AddFrame appends a system to the per-frame phase.
func (s *Scheduler) AddFrame(system System) {
	if s == nil || system == nil {
		return
	}
	s.frame = append(s.frame, system)
}

// AddFixed appends a system to the fixed-step phase.
func (s *Scheduler) AddFixed(system System) {
	if s == nil || system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

// Update runs the frame phase, then as many fixed steps as the accumulated
// time allows. Events are cleared after every fixed step so contacts are
// observed exactly once.
func (s *Scheduler) Update(w *World, dt float64) int {
	if s == nil || w == nil {
		return 0
	}
	if dt < 0 {
		dt = 0
	}

	w.SetDeltaTime(dt)
	for _, system := range s.frame {
		system.Update(w)
	}

	s.accumulator += dt
	steps := 0
	for s.accumulator >= s.FixedStep {
		if steps == maxCatchUpSteps {
			// drop the backlog instead of spiralling
			s.accumulator = 0
			break
		}
		w.SetDeltaTime(s.FixedStep)
		for _, system := range s.fixed {
			system.Update(w)
		}
		w.events.flush()
		s.accumulator -= s.FixedStep
		steps++
	}

	w.SetDeltaTime(dt)
	return steps
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.frame)+len(s.fixed))
	systems = append(systems, s.frame...)
	return append(systems, s.fixed...)
}
