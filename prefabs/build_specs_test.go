package prefabs

import (
	"image/color"
	"testing"

	"github.com/milk9111/shootscroller/ecs/component"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#3fa7ff", color.NRGBA{R: 0x3f, G: 0xa7, B: 0xff, A: 0xff}, false},
		{"7fff7f30", color.NRGBA{R: 0x7f, G: 0xff, B: 0x7f, A: 0x30}, false},
		{" #000000 ", color.NRGBA{A: 0xff}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
	}
	for _, c := range cases {
		got, err := ParseHexColor(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
		}
		if got != c.want {
			t.Fatalf("ParseHexColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCategoryMask(t *testing.T) {
	mask, unknown := CategoryMask([]string{"ground", "prop", "lava"})
	if mask != component.CategoryGround|component.CategoryProp {
		t.Fatalf("unexpected mask %b", mask)
	}
	if len(unknown) != 1 || unknown[0] != "lava" {
		t.Fatalf("unexpected unknown list %v", unknown)
	}
	if all, _ := CategoryMask([]string{"all"}); all != ^uint32(0) {
		t.Fatalf("all should set every bit, got %b", all)
	}
}

func TestMovementDefaults(t *testing.T) {
	m, err := MovementComponentSpec{MoveSpeed: 100}.Movement()
	if err != nil {
		t.Fatalf("movement: %v", err)
	}
	if m.FallMultiplier != 1 || m.LowJumpMultiplier != 1 || m.GroundMask != component.CategoryGround {
		t.Fatalf("unexpected defaults %+v", m)
	}
	if _, err := (MovementComponentSpec{GroundMask: []string{"lava"}}).Movement(); err == nil {
		t.Fatalf("expected error for unknown ground mask")
	}
}

func TestLoadEmbeddedPrefabs(t *testing.T) {
	for _, name := range []string{"player.yaml", "bullet.yaml", "crate.yaml", "barrel.yaml", "effect_area.yaml", "ground.yaml", "camera.yaml"} {
		spec, err := LoadEntityBuildSpec(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(spec.Components) == 0 {
			t.Fatalf("%s has no components", name)
		}
	}
	if _, err := LoadScript("barrel.tengo"); err != nil {
		t.Fatalf("load script: %v", err)
	}
}
