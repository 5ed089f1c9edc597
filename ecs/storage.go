package ecs

// entityStore tracks entity generations and free ids. Slot 0 is never handed
// out so the zero Entity stays invalid.
type entityStore struct {
	generations []generation
	alive       []bool
	free        []entityID
	count       int
}

func (s *entityStore) create() Entity {
	if len(s.generations) == 0 {
		s.generations = append(s.generations, 0)
		s.alive = append(s.alive, false)
	}

	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		id = entityID(len(s.generations))
		s.generations = append(s.generations, 0)
		s.alive = append(s.alive, false)
	}
	s.alive[id] = true
	s.count++
	return makeEntity(id, s.generations[id])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.alive[id] = false
	s.generations[id]++
	s.free = append(s.free, id)
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(s.generations) {
		return false
	}
	return s.alive[id] && s.generations[id] == e.generation()
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, s.count)
	for i := 1; i < len(s.generations); i++ {
		if s.alive[i] {
			out = append(out, makeEntity(entityID(i), s.generations[i]))
		}
	}
	return out
}
