package system

import (
	"testing"

	"github.com/milk9111/shootscroller/ecs/component"
)

func TestCategoryDebugColor(t *testing.T) {
	bullet := categoryDebugColor(component.CategoryBullet)
	cases := []struct {
		name       string
		categories uint32
		want       uint32
	}{
		{"bullet", component.CategoryBullet, component.CategoryBullet},
		{"bullet_wins_over_actor", component.CategoryBullet | component.CategoryActor, component.CategoryBullet},
		{"area", component.CategoryArea, component.CategoryArea},
		{"ground", component.CategoryGround, component.CategoryGround},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got, want := categoryDebugColor(c.categories), categoryDebugColor(c.want); got != want {
				t.Fatalf("color = %+v, want %+v", got, want)
			}
		})
	}
	if categoryDebugColor(component.CategoryDefault) != defaultDebugColor {
		t.Fatalf("default category should use the default colour")
	}
	if categoryDebugColor(component.CategoryActor) == bullet {
		t.Fatalf("actors and bullets share a colour")
	}
}

func TestBulletDebugLabel(t *testing.T) {
	cases := []struct {
		bullet component.Bullet
		want   string
	}{
		{component.Bullet{HitCount: 1, Tuning: component.BulletTuning{MaxHits: 3}}, "1/3 flying"},
		{component.Bullet{HitCount: 3, Tuning: component.BulletTuning{MaxHits: 3}, Phase: component.BulletSettling}, "3/3 settling"},
		{component.Bullet{HitCount: 7}, "7/inf flying"},
	}
	for _, c := range cases {
		if got := bulletDebugLabel(&c.bullet); got != c.want {
			t.Errorf("label = %q, want %q", got, c.want)
		}
	}
}
