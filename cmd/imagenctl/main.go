// imagenctl generates images with Google's Imagen 4 model on Vertex AI
// and writes them to disk.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"imagenctl/internal/config"
	"imagenctl/internal/database"
	"imagenctl/internal/imagen"
	"imagenctl/internal/repositories"
	"imagenctl/internal/services"
)

var (
	flagProject   string
	flagLocation  string
	flagOutputDir string
	flagModel     string
	flagPrompt    string
	flagOpen      bool
	flagVerbose   bool

	historyLimit int
)

var rootCmd = &cobra.Command{
	Use:   "imagenctl",
	Short: "Generate images using Google's Imagen 4 model",
	Long: `imagenctl sends a text prompt to Google's Imagen 4 model on Vertex AI and
writes the generated image to disk.

Examples:
  imagenctl --prompt "A watercolor fox in a snowy forest"
  imagenctl --project my-project --output-dir ./images --prompt "..."`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: runGenerate,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generations",
	RunE:  runHistory,
}

func init() {
	rootCmd.Flags().StringVar(&flagProject, "project", "", "Google Cloud project ID")
	rootCmd.Flags().StringVar(&flagLocation, "location", config.DefaultLocation, "Google Cloud location")
	rootCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "directory to save generated images (default: system temp dir)")
	rootCmd.Flags().StringVar(&flagModel, "model", config.DefaultModel, "model name to use")
	rootCmd.Flags().StringVar(&flagPrompt, "prompt", "", "text prompt for image generation (prompts interactively if absent)")
	rootCmd.Flags().BoolVar(&flagOpen, "open", true, "open the generated image in the default viewer")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := config.LoadEnvFile(); err != nil {
		log.Warnf("Failed to load %s: %v", config.EnvFileName, err)
	}

	projectID, err := config.ResolveProject(flagProject)
	if errors.Is(err, config.ErrProjectMissing) {
		projectID = promptLine("Enter your Google Cloud project ID: ")
		if projectID == "" {
			return config.ErrProjectMissing
		}
	} else if err != nil {
		return err
	}

	prompt := strings.TrimSpace(flagPrompt)
	if prompt == "" {
		prompt = promptLine("Enter your image prompt: ")
		if prompt == "" {
			return errors.New("prompt is required")
		}
	}

	client, err := imagen.NewClient(ctx, projectID, flagLocation)
	if err != nil {
		return err
	}
	generations := newGenerationService(client)

	fmt.Printf("Generating image with prompt: %s\n", prompt)
	outcome, err := generations.Generate(ctx, services.GenerateRequest{
		Prompt:     prompt,
		Model:      flagModel,
		ProjectID:  projectID,
		Location:   client.Location(),
		OutputDir:  flagOutputDir,
		OpenViewer: flagOpen,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Image saved to: %s\n", outcome.Path)
	return nil
}

// newGenerationService wires the history store when the local database is
// usable; generation itself never depends on it.
func newGenerationService(generator imagen.Generator) services.GenerationService {
	db, err := database.Init(database.Config{})
	if err != nil {
		log.Warnf("History database unavailable: %v", err)
		return services.NewGenerationService(generator, nil)
	}
	return services.NewDbServices(db, generator).Generations
}

func runHistory(cmd *cobra.Command, _ []string) error {
	db, err := database.Init(database.Config{})
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	repo := repositories.NewGenerationRepository(db)
	generations, err := repo.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(generations) == 0 {
		fmt.Println("No generations recorded yet.")
		return nil
	}
	for _, g := range generations {
		fmt.Printf("%s  [%s]\n", g.CreatedAt.Format(time.DateTime), g.Model)
		fmt.Printf("  prompt: %s\n", g.Prompt)
		fmt.Printf("  file:   %s (%d bytes)\n", g.OutputPath, g.ByteSize)
	}
	return nil
}

func promptLine(message string) string {
	fmt.Print(message)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
