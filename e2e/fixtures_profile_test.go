//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TestMod describes one entry of a generated mods.yml
type TestMod struct {
	Name       string
	Owner      string
	Version    string
	Downloads  int64
	Size       int64
	Categories []string
}

// CreateTestWorkspace creates the isolated home directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.t.Helper()
	workspace, err := os.MkdirTemp("", "modgrip-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = workspace
	return workspace, nil
}

// CreateTestProfile writes <workspace>/profiles/<name>/mods.yml and returns the profile directory
func (tf *TUITestFramework) CreateTestProfile(name string, mods ...TestMod) (string, error) {
	tf.t.Helper()
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	dir := filepath.Join(tf.workspace, "profiles", name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "profile: %s\ngame: risk-of-rain-2\nmods:\n", name)
	for _, m := range mods {
		if m.Version == "" {
			m.Version = "1.0.0"
		}
		fmt.Fprintf(&b, "  - name: %s\n    owner: %s\n", m.Name, m.Owner)
		if len(m.Categories) > 0 {
			fmt.Fprintf(&b, "    categories: [%s]\n", strings.Join(m.Categories, ", "))
		}
		fmt.Fprintf(&b, "    version:\n      version_number: %s\n      downloads: %d\n      file_size: %d\n",
			m.Version, m.Downloads, m.Size)
	}

	if err := os.WriteFile(filepath.Join(dir, "mods.yml"), []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return dir, nil
}

// defaultMods is a small profile with distinct sort keys
func defaultMods() []TestMod {
	return []TestMod{
		{Name: "AlphaMod", Owner: "Zed", Downloads: 300, Size: 1024, Categories: []string{"Tools"}},
		{Name: "BetaMod", Owner: "Yan", Downloads: 200, Size: 4096, Categories: []string{"Libraries"}},
		{Name: "GammaMod", Owner: "Xia", Downloads: 100, Size: 2048, Categories: []string{"Tools"}},
	}
}

// startWithProfile creates a workspace with one profile and launches the app on it
func (tf *TUITestFramework) startWithProfile(mods ...TestMod) (string, error) {
	tf.t.Helper()
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return "", err
	}
	if len(mods) == 0 {
		mods = defaultMods()
	}
	dir, err := tf.CreateTestProfile("Testing", mods...)
	if err != nil {
		return "", err
	}
	return dir, tf.StartApp(dir)
}
