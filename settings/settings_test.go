package settings

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	m, err := gdata.Open(gdata.Config{AppName: "shootscroller_test"})
	if err != nil {
		t.Fatalf("gdata.Open: %v", err)
	}
	return m
}

func TestStoreWithoutDataDirUsesDefaults(t *testing.T) {
	s := NewStore(nil)
	if got := s.Bindings(); got != DefaultBindings() {
		t.Fatalf("bindings = %+v, want defaults", got)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save without data dir: %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	m := openTestManager(t)

	s := NewStore(m)
	b := s.Bindings()
	b.JumpButton = 1
	b.ShootButton = 3
	s.SetBindings(b)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewStore(m)
	got := reloaded.Bindings()
	if got.JumpButton != 1 || got.ShootButton != 3 {
		t.Fatalf("reloaded bindings = %+v", got)
	}
}
