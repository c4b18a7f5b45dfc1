package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateScenarioPath(t *testing.T) {
	path := GenerateScenarioPath()

	if !strings.Contains(path, "scenario_") {
		t.Errorf("Path should contain 'scenario_': %s", path)
	}
	if filepath.Dir(path) != ScenariosDir {
		t.Errorf("Path should be in %s: %s", ScenariosDir, path)
	}
	if filepath.Ext(path) != ".yaml" {
		t.Errorf("Path should be a YAML file: %s", path)
	}
}

func TestFindLatestScenario(t *testing.T) {
	testDir := t.TempDir()

	files := []string{
		filepath.Join(testDir, "scenario_2026-02-12_10-00-00.yaml"),
		filepath.Join(testDir, "scenario_2026-02-13_01-00-00.toml"),
		filepath.Join(testDir, "scenario_2026-02-11_15-30-00.yaml"),
	}

	for i, f := range files {
		if err := os.WriteFile(f, []byte("version: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(f, modTime, modTime); err != nil {
			t.Fatal(err)
		}
	}
	// Not a scenario, newest of all
	notes := filepath.Join(testDir, "notes.txt")
	os.WriteFile(notes, []byte("x"), 0644)
	future := time.Now().Add(24 * time.Hour)
	os.Chtimes(notes, future, future)

	latest, err := FindLatestScenario(testDir)
	if err != nil {
		t.Fatalf("FindLatestScenario failed: %v", err)
	}
	if latest != files[len(files)-1] {
		t.Errorf("Expected latest to be %s, got %s", files[len(files)-1], latest)
	}
}

func TestFindLatestScenarioEmpty(t *testing.T) {
	if _, err := FindLatestScenario(t.TempDir()); err == nil {
		t.Error("expected error for empty directory")
	}
	if _, err := FindLatestScenario(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
