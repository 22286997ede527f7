package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed behaviors/*.tengo
var BehaviorsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Load returns a prefab file, preferring the copy on disk under prefabs/.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadBehavior returns a behavior script by file name, preferring the copy
// on disk under prefabs/behaviors/.
func LoadBehavior(name string) ([]byte, error) {
	clean := cleanBehaviorPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return BehaviorsFS.ReadFile(clean)
}

// BehaviorFiles lists the behavior scripts, embedded and on disk, by base
// name in sorted order.
func BehaviorFiles() []string {
	seen := make(map[string]bool)
	if entries, err := fs.ReadDir(BehaviorsFS, "behaviors"); err == nil {
		for _, e := range entries {
			seen[e.Name()] = true
		}
	}
	if entries, err := os.ReadDir(filepath.Join("prefabs", "behaviors")); err == nil {
		for _, e := range entries {
			seen[e.Name()] = true
		}
	}
	var out []string
	for name := range seen {
		if isScriptFile(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanBehaviorPath(p string) string {
	s := cleanPrefabPath(p)
	if after, ok := strings.CutPrefix(s, "behaviors/"); ok {
		s = after
	}
	return path.Join("behaviors", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
