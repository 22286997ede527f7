package main

import (
	"fmt"
	"log"

	"github.com/milk9111/scenescript/prefabs"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "user"
)

// Settings are the user choices that survive a restart.
type Settings struct {
	Volume     float64 `yaml:"volume"`
	Fullscreen bool    `yaml:"fullscreen"`
	// LastScene is where the next session starts, if the document still
	// has it.
	LastScene string `yaml:"last_scene"`
}

// defaultSettings reads first-run values from prefabs/settings.yaml.
func defaultSettings() Settings {
	spec, err := prefabs.LoadSpec[prefabs.SettingsSpec]("settings.yaml")
	if err != nil {
		log.Printf("settings: %v", err)
		return Settings{Volume: 1}
	}
	return Settings{Volume: spec.Volume, Fullscreen: spec.Fullscreen}
}

// settingsStore persists Settings through gdata. A nil manager keeps the
// settings in memory only.
type settingsStore struct {
	manager *gdata.Manager
	Settings
}

func openSettings(appName string) *settingsStore {
	st := &settingsStore{Settings: defaultSettings()}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("settings: %v (not persisted)", err)
		return st
	}
	st.manager = m
	if err := st.load(); err != nil {
		log.Printf("settings: %v (using defaults)", err)
	}
	return st
}

func (st *settingsStore) load() error {
	if st.manager == nil || !st.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := st.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	s, err := decodeSettings(data, st.Settings)
	if err != nil {
		return err
	}
	st.Settings = s
	return nil
}

func (st *settingsStore) Save() error {
	if st.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(st.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := st.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// decodeSettings overlays saved data on def and clamps the volume.
func decodeSettings(data []byte, def Settings) (Settings, error) {
	s := def
	if err := yaml.Unmarshal(data, &s); err != nil {
		return def, fmt.Errorf("unmarshal settings: %w", err)
	}
	s.Volume = min(max(s.Volume, 0), 1)
	return s, nil
}
