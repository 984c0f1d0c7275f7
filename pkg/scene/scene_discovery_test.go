package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"three-spheres", "Three Spheres"},
		{"glass_ball", "Glass Ball"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return path
}

func TestParseJSONMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		file            string
		content         string
		wantName        string
		wantDescription string
	}{
		{
			file:            "complete.json",
			content:         `{"name": "Glass Trio", "description": "Three glass balls", "spheres": []}`,
			wantName:        "Glass Trio",
			wantDescription: "Three glass balls",
		},
		{
			file:     "no-metadata.json",
			content:  `{"spheres": []}`,
			wantName: "No Metadata", // From filename
		},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := writeScene(t, dir, tc.file, tc.content)

			result, err := ParseJSONMetadata(path)
			if err != nil {
				t.Fatalf("ParseJSONMetadata() error: %v", err)
			}
			if result.ID != path || result.FilePath != path {
				t.Errorf("ID/FilePath = %q/%q, want %q", result.ID, result.FilePath, path)
			}
			if result.Name != tc.wantName || result.DisplayName != tc.wantName {
				t.Errorf("Name = %q, DisplayName = %q, want %q", result.Name, result.DisplayName, tc.wantName)
			}
			if result.Description != tc.wantDescription {
				t.Errorf("Description = %q, want %q", result.Description, tc.wantDescription)
			}
			if result.Type != "json" {
				t.Errorf("Type = %q, want json", result.Type)
			}
		})
	}
}

func TestParseJSONMetadata_InvalidFile(t *testing.T) {
	path := writeScene(t, t.TempDir(), "broken.json", `{"name": `)
	if _, err := ParseJSONMetadata(path); !errors.Is(err, ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene, got %v", err)
	}
}

func TestListJSONScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "b.json", `{"name": "Bravo"}`)
	writeScene(t, dir, "a.json", `{"name": "Alpha"}`)
	writeScene(t, dir, "broken.json", `not json`)
	writeScene(t, dir, "notes.txt", `ignored`)

	scenes, err := ListJSONScenes(dir)
	if err != nil {
		t.Fatalf("ListJSONScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d: %+v", len(scenes), scenes)
	}
	if scenes[0].DisplayName != "Alpha" || scenes[1].DisplayName != "Bravo" {
		t.Errorf("Expected sorted Alpha, Bravo; got %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListJSONScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListJSONScenes(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Errorf("ListJSONScenes() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "extra.json", `{"name": "Extra"}`)

	scenes, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	expected := []string{"default", "sphere-grid", "random"}
	if len(scenes) != len(expected)+1 {
		t.Fatalf("Scene count = %d, want %d", len(scenes), len(expected)+1)
	}
	for i, id := range expected {
		if scenes[i].ID != id || scenes[i].Type != "builtin" {
			t.Errorf("Scene %d = %q (%s), want builtin %q", i, scenes[i].ID, scenes[i].Type, id)
		}
	}
	if scenes[len(expected)].Name != "Extra" {
		t.Errorf("Expected JSON scene last, got %+v", scenes[len(expected)])
	}
}

func TestLookup(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Lookup(info.ID, 1)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", info.ID, err)
			}
			if s.Name != info.ID {
				t.Errorf("Name = %q, want %q", s.Name, info.ID)
			}
		})
	}

	t.Run("json file", func(t *testing.T) {
		path := writeScene(t, t.TempDir(), "one.json", minimalScene)
		s, err := Lookup(path, 0)
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", path, err)
		}
		if s.World.Len() != 1 {
			t.Errorf("Expected 1 sphere, got %d", s.World.Len())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Lookup("cornell", 0); !errors.Is(err, ErrUnknownScene) {
			t.Errorf("Expected ErrUnknownScene, got %v", err)
		}
	})

	t.Run("missing json", func(t *testing.T) {
		if _, err := Lookup(filepath.Join(t.TempDir(), "gone.json"), 0); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected a not-exist error, got %v", err)
		}
	})
}
