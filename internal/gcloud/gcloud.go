// Package gcloud shells out to the Google Cloud CLI for the handful of
// operations the setup wizard needs: presence/version probing, browser
// based authentication and project listing.
package gcloud

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// ErrNotFound is returned when the gcloud executable cannot be located in
// PATH or any of the conventional install locations.
var ErrNotFound = errors.New("Google Cloud SDK (gcloud) is not installed or not in PATH")

// CLI is a resolved gcloud executable. Resolution never mutates the
// process environment; the absolute command path is carried here instead.
type CLI struct {
	Path string
}

// Project is one entry of `gcloud projects list`.
type Project struct {
	ID   string
	Name string
}

func executableName() string {
	if runtime.GOOS == "windows" {
		return "gcloud.cmd"
	}
	return "gcloud"
}

// fallbackPaths lists conventional SDK install locations per platform,
// checked when PATH lookup fails.
func fallbackPaths() []string {
	name := executableName()
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "google-cloud-sdk", "bin", name))
	}
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			candidates = append(candidates, filepath.Join(localAppData, "Google", "Cloud SDK", "google-cloud-sdk", "bin", name))
		}
		if programFiles := os.Getenv("ProgramFiles(x86)"); programFiles != "" {
			candidates = append(candidates, filepath.Join(programFiles, "Google", "Cloud SDK", "google-cloud-sdk", "bin", name))
		}
	case "darwin":
		candidates = append(candidates,
			filepath.Join("/usr/local", "google-cloud-sdk", "bin", name),
			filepath.Join("/opt/homebrew", "share", "google-cloud-sdk", "bin", name),
		)
	default:
		candidates = append(candidates,
			filepath.Join("/usr/lib", "google-cloud-sdk", "bin", name),
			filepath.Join("/usr/local", "google-cloud-sdk", "bin", name),
			filepath.Join("/snap", "bin", "gcloud"),
		)
	}
	return candidates
}

// Resolve locates the gcloud executable: PATH first, then the platform's
// conventional install locations.
func Resolve() (*CLI, error) {
	if path, err := exec.LookPath(executableName()); err == nil {
		log.Debugf("gcloud resolved from PATH: %s", path)
		return &CLI{Path: path}, nil
	}
	for _, candidate := range fallbackPaths() {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		log.Debugf("gcloud resolved from fallback location: %s", candidate)
		return &CLI{Path: candidate}, nil
	}
	return nil, ErrNotFound
}

// Version runs `gcloud --version` and returns the first output line.
func (c *CLI) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.Path, "--version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to run gcloud --version: %w", err)
	}
	lines := strings.SplitN(strings.TrimSpace(string(output)), "\n", 2)
	return strings.TrimSpace(lines[0]), nil
}

// AuthLogin runs the browser-based application-default login flow with the
// terminal attached so the user can follow the prompts.
func (c *CLI) AuthLogin(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.Path, "auth", "application-default", "login")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to set up authentication: %w", err)
	}
	return nil
}

// ListProjects runs `gcloud projects list --format=json` and parses the
// result. A non-JSON response is an error so callers can fall back to
// manual project entry.
func (c *CLI) ListProjects(ctx context.Context) ([]Project, error) {
	cmd := exec.CommandContext(ctx, c.Path, "projects", "list", "--format=json")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return parseProjects(output)
}

func parseProjects(data []byte) ([]Project, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("failed to parse project list: not valid JSON")
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, errors.New("failed to parse project list: expected a JSON array")
	}
	var projects []Project
	parsed.ForEach(func(_, value gjson.Result) bool {
		id := strings.TrimSpace(value.Get("projectId").String())
		if id == "" {
			return true
		}
		projects = append(projects, Project{
			ID:   id,
			Name: strings.TrimSpace(value.Get("name").String()),
		})
		return true
	})
	return projects, nil
}
