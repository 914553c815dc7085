package gcloud

import (
	"strings"
	"testing"
)

func TestParseProjects(t *testing.T) {
	data := []byte(`[
		{"projectId": "alpha-123", "name": "Alpha"},
		{"projectId": "beta-456"},
		{"name": "no id, skipped"}
	]`)

	projects, err := parseProjects(data)
	if err != nil {
		t.Fatalf("parseProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ID != "alpha-123" || projects[0].Name != "Alpha" {
		t.Fatalf("unexpected first project: %+v", projects[0])
	}
	if projects[1].ID != "beta-456" || projects[1].Name != "" {
		t.Fatalf("unexpected second project: %+v", projects[1])
	}
}

func TestParseProjectsEmptyList(t *testing.T) {
	projects, err := parseProjects([]byte(`[]`))
	if err != nil {
		t.Fatalf("parseProjects failed: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected no projects, got %d", len(projects))
	}
}

func TestParseProjectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "ERROR: permission denied"},
		{"empty", ""},
		{"object instead of array", `{"projectId": "alpha"}`},
	}
	for _, tc := range cases {
		if _, err := parseProjects([]byte(tc.data)); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

func TestFallbackPathsContainExecutable(t *testing.T) {
	paths := fallbackPaths()
	if len(paths) == 0 {
		t.Fatal("expected at least one fallback location")
	}
	for _, path := range paths {
		if !strings.Contains(path, "gcloud") {
			t.Fatalf("fallback path does not reference gcloud: %s", path)
		}
	}
}
