package ecs

import (
	"testing"

	"github.com/milk9111/shootscroller/ecs/component"
)

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestEntityLifecycle(t *testing.T) {
	w := NewWorld()
	bullet := CreateEntity(w)
	if err := Add(w, bullet, component.BulletComponent.Kind(), &component.Bullet{HitCount: 2}); err != nil {
		t.Fatalf("add bullet: %v", err)
	}
	if !DestroyEntity(w, bullet) {
		t.Fatalf("destroying a live entity should report true")
	}
	if DestroyEntity(w, bullet) {
		t.Fatalf("destroying twice should report false")
	}

	next := CreateEntity(w)
	if next == bullet || IsAlive(w, bullet) {
		t.Fatalf("stale handle %s still resolves after recreate as %s", bullet, next)
	}
	if Has(w, next, component.BulletComponent.Kind()) {
		t.Fatalf("new entity inherited a destroyed entity's bullet")
	}
	if err := Add(w, bullet, component.BulletComponent.Kind(), &component.Bullet{}); err == nil {
		t.Fatalf("expected error adding to a dead entity")
	}
	if n := len(Entities(w)); n != 1 {
		t.Fatalf("expected 1 live entity, got %d", n)
	}
}

func TestComponentsStorePointers(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	b := &component.Bullet{Tuning: component.BulletTuning{MaxHits: 3}}
	if err := Add(w, e, component.BulletComponent.Kind(), b); err != nil {
		t.Fatalf("add: %v", err)
	}
	b.HitCount = 2
	got, ok := Get(w, e, component.BulletComponent.Kind())
	if !ok || got.HitCount != 2 {
		t.Fatalf("stored component is not the added pointer: %+v", got)
	}
	if !Remove(w, e, component.BulletComponent.Kind()) || Has(w, e, component.BulletComponent.Kind()) {
		t.Fatalf("remove failed")
	}
	if Remove(w, e, component.BulletComponent.Kind()) {
		t.Fatalf("second remove should report false")
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	kt := component.TransformComponent.Kind()
	kb := component.BulletComponent.Kind()
	kn := component.NameComponent.Kind()
	kp := component.ActorParamsComponent.Kind()

	full := CreateEntity(w)
	noName := CreateEntity(w)
	dead := CreateEntity(w)
	for _, e := range []Entity{full, noName, dead} {
		if err := Add(w, e, kt, &component.Transform{}); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e, kb, &component.Bullet{}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []Entity{full, dead} {
		if err := Add(w, e, kn, &component.Name{Value: "bullet"}); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e, kp, &component.ActorParams{}); err != nil {
			t.Fatal(err)
		}
	}
	DestroyEntity(w, dead)

	var two, three, four []Entity
	ForEach2(w, kt, kb, func(e Entity, _ *component.Transform, _ *component.Bullet) { two = append(two, e) })
	ForEach3(w, kt, kb, kn, func(e Entity, _ *component.Transform, _ *component.Bullet, _ *component.Name) {
		three = append(three, e)
	})
	ForEach4(w, kt, kb, kn, kp, func(e Entity, _ *component.Transform, _ *component.Bullet, _ *component.Name, _ *component.ActorParams) {
		four = append(four, e)
	})

	if set := toSet(two); len(set) != 2 {
		t.Fatalf("ForEach2 visited %v, want full and noName", two)
	}
	if len(three) != 1 || three[0] != full {
		t.Fatalf("ForEach3 visited %v, want only %s", three, full)
	}
	if len(four) != 1 || four[0] != full {
		t.Fatalf("ForEach4 visited %v, want only %s", four, full)
	}

	var none []Entity
	ForEach2(w, kt, component.LevelBoundsComponent.Kind(), func(e Entity, _ *component.Transform, _ *component.LevelBounds) {
		none = append(none, e)
	})
	if len(none) != 0 {
		t.Fatalf("missing store should visit nothing, got %v", none)
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	if err := Add(w, e1, ka, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, ka, intPtr(2)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, kb, stringPtr("b")); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e3, kb, stringPtr("c")); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		kinds []component.Kind
		want  []Entity
	}{
		{"single", []component.Kind{ka}, []Entity{e1, e2}},
		{"both", []component.Kind{ka, kb}, []Entity{e2}},
		{"missing_store", []component.Kind{ka, component.NewComponentKind[bool]()}, nil},
		{"none", nil, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := toSet(w.Query(c.kinds...))
			if len(got) != len(c.want) {
				t.Fatalf("expected %d entities, got %d", len(c.want), len(got))
			}
			for _, e := range c.want {
				if _, ok := got[e]; !ok {
					t.Fatalf("expected %v in result", e)
				}
			}
		})
	}

	if first, ok := w.First(kb); !ok || (first != e2 && first != e3) {
		t.Fatalf("expected first string holder, got %v ok=%v", first, ok)
	}
	DestroyEntity(w, e2)
	DestroyEntity(w, e3)
	if _, ok := w.First(kb); ok {
		t.Fatalf("expected no live string holder")
	}
}

func TestForEachSurvivesDestroy(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	var ents []Entity
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, k, intPtr(i)); err != nil {
			t.Fatal(err)
		}
		ents = append(ents, e)
	}

	visited := 0
	ForEach(w, k, func(e Entity, v *int) {
		visited++
		// destroying a later entity must not be visited afterwards
		if e == ents[0] {
			DestroyEntity(w, ents[3])
		}
	})
	if visited != 3 {
		t.Fatalf("expected 3 visits, got %d", visited)
	}
}
