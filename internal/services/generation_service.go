package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/browser"
	log "github.com/sirupsen/logrus"

	"imagenctl/internal/config"
	"imagenctl/internal/imagen"
	"imagenctl/internal/models"
	"imagenctl/internal/repositories"
	"imagenctl/internal/utils"
)

// promptPrefixLength caps how much of the prompt ends up in the filename.
const promptPrefixLength = 30

// GenerateRequest is one CLI-level generation: prompt plus the knobs that
// control where the request goes and where the image lands.
type GenerateRequest struct {
	Prompt     string
	Model      string
	ProjectID  string
	Location   string
	OutputDir  string
	OpenViewer bool
}

// GenerateOutcome reports where the image was written.
type GenerateOutcome struct {
	Path     string
	MIMEType string
	ByteSize int64
}

type GenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateOutcome, error)
	Recent(ctx context.Context, limit int) ([]models.Generation, error)
}

type generationService struct {
	generator imagen.Generator
	history   repositories.GenerationRepository
}

// NewGenerationService wires a generator with an optional history store.
// A nil history repository disables recording without failing generations.
func NewGenerationService(generator imagen.Generator, history repositories.GenerationRepository) GenerationService {
	return &generationService{generator: generator, history: history}
}

// Generate issues one generation request and writes the first returned
// image verbatim to the output directory. The file is named from a
// sanitized prefix of the prompt.
func (s *generationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateOutcome, error) {
	if s.generator == nil {
		return nil, errors.New("generator is not configured")
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, errors.New("prompt is required")
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = config.DefaultModel
	}

	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		outputDir = os.TempDir()
	} else if err := utils.EnsureDirectory(outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result, err := s.generator.GenerateImage(ctx, &imagen.Request{
		Model:  model,
		Prompt: prompt,
	})
	if err != nil {
		return nil, err
	}
	image, err := result.First()
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("imagen4_%s%s", utils.SanitizePromptPrefix(prompt, promptPrefixLength), extensionForMIME(image.MIMEType))
	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, image.Data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	s.record(ctx, &models.Generation{
		RequestID:  uuid.NewString(),
		Prompt:     prompt,
		Model:      model,
		ProjectID:  strings.TrimSpace(req.ProjectID),
		Location:   strings.TrimSpace(req.Location),
		OutputPath: path,
		MIMEType:   image.MIMEType,
		ByteSize:   int64(len(image.Data)),
	})

	if req.OpenViewer {
		if err := browser.OpenFile(path); err != nil {
			log.Warnf("Failed to open image viewer: %v", err)
		}
	}

	return &GenerateOutcome{
		Path:     path,
		MIMEType: image.MIMEType,
		ByteSize: int64(len(image.Data)),
	}, nil
}

// Recent lists the most recent recorded generations, newest first.
func (s *generationService) Recent(ctx context.Context, limit int) ([]models.Generation, error) {
	if s.history == nil {
		return nil, errors.New("history database is not available")
	}
	return s.history.Recent(ctx, limit)
}

// record saves the generation to history. Recording is best effort: the
// image is already on disk, so a history failure only logs a warning.
func (s *generationService) record(ctx context.Context, generation *models.Generation) {
	if s.history == nil {
		return
	}
	if err := s.history.Create(ctx, generation); err != nil {
		log.Warnf("Failed to record generation history: %v", err)
	}
}

func extensionForMIME(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
