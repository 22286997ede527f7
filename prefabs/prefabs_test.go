package prefabs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestLoadSpecEmbedded(t *testing.T) {
	spec, err := LoadSpec[EngineSpec]("engine.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.MaxStep <= 0 || spec.BulletLifetime <= 0 {
		t.Fatalf("unexpected engine spec %+v", spec)
	}
	if _, err := LoadSpec[EngineSpec]("missing.yaml"); err == nil {
		t.Fatalf("expected an error for a missing spec")
	}
}

func TestCleanPaths(t *testing.T) {
	tests := []struct {
		in, prefab, behavior string
	}{
		{"engine.yaml", "engine.yaml", "behaviors/engine.yaml"},
		{"prefabs/hero.yaml", "hero.yaml", "behaviors/hero.yaml"},
		{"behaviors/guard_patrol.tengo", "behaviors/guard_patrol.tengo", "behaviors/guard_patrol.tengo"},
		{"prefabs/behaviors/guard_patrol.tengo", "behaviors/guard_patrol.tengo", "behaviors/guard_patrol.tengo"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := cleanPrefabPath(tc.in); got != tc.prefab {
				t.Fatalf("cleanPrefabPath(%q) = %q, want %q", tc.in, got, tc.prefab)
			}
			if got := cleanBehaviorPath(tc.in); got != tc.behavior {
				t.Fatalf("cleanBehaviorPath(%q) = %q, want %q", tc.in, got, tc.behavior)
			}
		})
	}
}

func TestBehaviorFiles(t *testing.T) {
	files := BehaviorFiles()
	if !slices.Contains(files, "guard_patrol.tengo") {
		t.Fatalf("embedded behavior missing from %v", files)
	}
	if _, err := LoadBehavior("guard_patrol.tengo"); err != nil {
		t.Fatalf("load behavior: %v", err)
	}
}

func TestWatchedKinds(t *testing.T) {
	tests := []struct {
		path                   string
		spec, script, document bool
	}{
		{"prefabs/hero.yaml", true, false, false},
		{"doc.YML", true, false, false},
		{"behaviors/guard.tengo", false, true, false},
		{"GameScript.json", false, false, true},
		{"notes.txt", false, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if isSpecFile(tc.path) != tc.spec || isScriptFile(tc.path) != tc.script || IsDocumentFile(tc.path) != tc.document {
				t.Fatalf("wrong classification for %q", tc.path)
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(want, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case got := <-w.Events:
			if got != want {
				t.Fatalf("unexpected event for %q", got)
			}
			return
		case err := <-w.Errors:
			t.Fatalf("watch error: %v", err)
		case <-timeout:
			t.Fatalf("no event for %q", want)
		}
	}
}
