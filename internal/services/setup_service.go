package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/browser"

	"imagenctl/internal/config"
	"imagenctl/internal/database"
	"imagenctl/internal/gcloud"
	"imagenctl/internal/imagen"
)

// minimumGoMinor is the lowest go1.x runtime the tool supports.
const minimumGoMinor = 21

// testPrompt keeps the connectivity check cheap and predictable.
const testPrompt = "A simple blue circle on a white background"

// SetupStep is one stage of the setup wizard.
type SetupStep struct {
	Title string
	Run   func(ctx context.Context) error
}

// SetupService walks the user through environment bootstrapping: runtime
// check, local state, gcloud discovery, authentication, project selection
// and a test generation. Steps run in order and the wizard halts on the
// first failure.
type SetupService struct {
	in  *bufio.Reader
	out io.Writer

	cli       *gcloud.CLI
	projectID string
	envPath   string

	// newGenerator builds the client used by the final test step.
	newGenerator func(ctx context.Context, project, location string) (imagen.Generator, error)
}

func NewSetupService(in io.Reader, out io.Writer) *SetupService {
	s := &SetupService{
		in:      bufio.NewReader(in),
		out:     out,
		envPath: config.EnvFileName,
	}
	s.newGenerator = func(ctx context.Context, project, location string) (imagen.Generator, error) {
		return imagen.NewClient(ctx, project, location)
	}
	return s
}

func (s *SetupService) steps() []SetupStep {
	return []SetupStep{
		{Title: "Checking Go runtime version", Run: s.checkRuntime},
		{Title: "Preparing local state", Run: s.prepareLocalState},
		{Title: "Checking Google Cloud SDK installation", Run: s.locateGcloud},
		{Title: "Setting up Google Cloud authentication", Run: s.authenticate},
		{Title: "Configuring Google Cloud project", Run: s.configureProject},
		{Title: "Testing connection to the Imagen API", Run: s.testGeneration},
	}
}

// Run executes the wizard from the first step, halting on the first error.
func (s *SetupService) Run(ctx context.Context) error {
	if err := s.runSteps(ctx, s.steps()); err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, strings.Repeat("=", 80))
	fmt.Fprintln(s.out, "Setup completed successfully!")
	fmt.Fprintln(s.out, strings.Repeat("=", 80))
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "You can now generate images:")
	fmt.Fprintln(s.out, `  imagenctl --prompt "Your creative prompt here"`)
	return nil
}

func (s *SetupService) runSteps(ctx context.Context, steps []SetupStep) error {
	for i, step := range steps {
		s.printStep(i+1, len(steps), step.Title)
		if err := step.Run(ctx); err != nil {
			fmt.Fprintf(s.out, "Setup failed: %v\n", err)
			return err
		}
	}
	return nil
}

func (s *SetupService) printStep(num, total int, title string) {
	fmt.Fprintf(s.out, "\n[%d/%d] %s\n", num, total, title)
	fmt.Fprintln(s.out, strings.Repeat("=", 80))
}

func (s *SetupService) prompt(message string) string {
	fmt.Fprint(s.out, message)
	line, _ := s.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (s *SetupService) confirm(message string) bool {
	return strings.EqualFold(s.prompt(message), "y")
}

func (s *SetupService) checkRuntime(context.Context) error {
	version := runtime.Version()
	if !goVersionAtLeast(version, 1, minimumGoMinor) {
		fmt.Fprintf(s.out, "Go 1.%d or higher is required (current runtime: %s).\n", minimumGoMinor, version)
		return fmt.Errorf("unsupported Go runtime %s", version)
	}
	fmt.Fprintf(s.out, "Go runtime %s is compatible.\n", version)
	return nil
}

// goVersionAtLeast reports whether a runtime version string like
// "go1.25.0" meets the given minimum. Unparseable versions (devel builds)
// are accepted.
func goVersionAtLeast(version string, major, minor int) bool {
	version = strings.TrimPrefix(strings.TrimSpace(version), "go")
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return true
	}
	gotMajor, err := strconv.Atoi(parts[0])
	if err != nil {
		return true
	}
	gotMinor, err := strconv.Atoi(strings.SplitN(parts[1], "-", 2)[0])
	if err != nil {
		return true
	}
	if gotMajor != major {
		return gotMajor > major
	}
	return gotMinor >= minor
}

func (s *SetupService) prepareLocalState(context.Context) error {
	dbPath := database.GetDefaultDBPath()
	db, err := database.Init(database.Config{Path: dbPath})
	if err != nil {
		return fmt.Errorf("failed to prepare history database: %w", err)
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	fmt.Fprintf(s.out, "History database ready at %s.\n", dbPath)
	return nil
}

func (s *SetupService) locateGcloud(ctx context.Context) error {
	cli, err := gcloud.Resolve()
	if err != nil {
		fmt.Fprintln(s.out, "Google Cloud SDK (gcloud) is not installed or not in PATH.")
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Please install the Google Cloud SDK:")
		fmt.Fprintln(s.out, "- Visit: https://cloud.google.com/sdk/docs/install")
		fmt.Fprintln(s.out, "- Follow the installation instructions for your operating system.")
		fmt.Fprintln(s.out, "- After installation, run 'gcloud init' to initialize the SDK.")
		fmt.Fprintln(s.out, "- Then run this setup wizard again.")
		return err
	}
	version, err := cli.Version(ctx)
	if err != nil {
		return err
	}
	s.cli = cli
	fmt.Fprintf(s.out, "Google Cloud SDK is installed (%s).\n", version)
	return nil
}

func (s *SetupService) authenticate(ctx context.Context) error {
	if s.cli == nil {
		return errors.New("gcloud CLI has not been located")
	}
	fmt.Fprintln(s.out, "This step will open a browser window for you to log in to your Google account.")
	fmt.Fprintln(s.out, "If you're already authenticated, this step will be quick.")
	s.prompt("Press Enter to continue...")

	if err := s.cli.AuthLogin(ctx); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Google Cloud authentication set up successfully.")
	return nil
}

func (s *SetupService) configureProject(ctx context.Context) error {
	if current := config.ProjectFromEnv(); current != "" {
		fmt.Fprintf(s.out, "Project ID is already set in environment: %s\n", current)
		if !s.confirm("Do you want to change it? (y/N): ") {
			s.projectID = current
			return nil
		}
	}

	projectID := s.selectProject(ctx)
	if projectID == "" {
		return errors.New("project ID is required")
	}
	if err := config.SaveProject(s.envPath, projectID); err != nil {
		return err
	}
	s.projectID = projectID
	fmt.Fprintf(s.out, "Project ID '%s' configured and saved to %s.\n", projectID, s.envPath)
	return nil
}

// selectProject lists the account's projects for a numbered choice,
// falling back to manual entry when listing fails or returns nothing.
func (s *SetupService) selectProject(ctx context.Context) string {
	if s.cli == nil {
		return s.prompt("Enter your Google Cloud project ID: ")
	}
	projects, err := s.cli.ListProjects(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Failed to list projects: %v\n", err)
		return s.prompt("Enter your Google Cloud project ID manually: ")
	}
	if len(projects) == 0 {
		fmt.Fprintln(s.out, "No projects found in your Google Cloud account.")
		return s.prompt("Enter your Google Cloud project ID: ")
	}
	return s.chooseProject(projects)
}

func (s *SetupService) chooseProject(projects []gcloud.Project) string {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Available projects:")
	for i, project := range projects {
		name := project.Name
		if name == "" {
			name = "No name"
		}
		fmt.Fprintf(s.out, "%d. %s - %s\n", i+1, project.ID, name)
	}

	choice := s.prompt("\nSelect a project number or enter a project ID manually: ")
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(projects) {
		return projects[n-1].ID
	}
	return choice
}

func (s *SetupService) testGeneration(ctx context.Context) error {
	projectID := s.projectID
	if projectID == "" {
		projectID = config.ProjectFromEnv()
	}
	if projectID == "" {
		return config.ErrProjectMissing
	}

	fmt.Fprintln(s.out, "Initializing client...")
	generator, err := s.newGenerator(ctx, projectID, config.DefaultLocation)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Testing API access with a simple prompt...")
	result, err := generator.GenerateImage(ctx, &imagen.Request{Prompt: testPrompt})
	if err != nil {
		fmt.Fprintf(s.out, "Failed to connect to the Imagen API: %v\n", err)
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Possible reasons:")
		fmt.Fprintln(s.out, "1. Your Google Cloud project doesn't have access to the Imagen API")
		fmt.Fprintln(s.out, "2. The Imagen API is not enabled for your project")
		fmt.Fprintln(s.out, "3. Authentication issues with your Google Cloud account")
		return err
	}
	image, err := result.First()
	if err != nil {
		return err
	}

	testImagePath := filepath.Join(os.TempDir(), "imagen4_test.png")
	if err := os.WriteFile(testImagePath, image.Data, 0644); err != nil {
		return fmt.Errorf("failed to save test image: %w", err)
	}

	fmt.Fprintln(s.out, "Successfully connected to the Imagen API!")
	fmt.Fprintf(s.out, "Test image saved to: %s\n", testImagePath)

	if s.confirm("Do you want to view the test image? (y/N): ") {
		if err := browser.OpenFile(testImagePath); err != nil {
			fmt.Fprintf(s.out, "Failed to open image viewer: %v\n", err)
		}
	}
	return nil
}
