// Package imagen wraps the Vertex AI image generation API behind a small
// request/response surface so callers and tests do not depend on the SDK
// types directly.
package imagen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"imagenctl/internal/config"
)

// Request describes one image generation call.
type Request struct {
	Model  string
	Prompt string
	// Count is the number of images to request. Zero means one.
	Count int32
}

// Image is a single generated image, raw bytes as returned by the API.
type Image struct {
	Data     []byte
	MIMEType string
}

// Result carries the images of one generation response.
type Result struct {
	Images []Image
}

// First returns the first generated image.
func (r *Result) First() (Image, error) {
	if r == nil || len(r.Images) == 0 {
		return Image{}, errors.New("generation response contains no images")
	}
	return r.Images[0], nil
}

// Generator issues image generation requests. Satisfied by *Client; tests
// substitute fakes.
type Generator interface {
	GenerateImage(ctx context.Context, req *Request) (*Result, error)
}

// Client talks to the Imagen models on the Vertex AI backend.
type Client struct {
	genai    *genai.Client
	project  string
	location string
}

// NewClient builds a Vertex AI client for the given project and location.
// Location defaults to config.DefaultLocation when empty.
func NewClient(ctx context.Context, project, location string) (*Client, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return nil, config.ErrProjectMissing
	}
	location = strings.TrimSpace(location)
	if location == "" {
		location = config.DefaultLocation
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  project,
		Location: location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}
	return &Client{genai: client, project: project, location: location}, nil
}

// Project returns the project ID the client was built for.
func (c *Client) Project() string { return c.project }

// Location returns the region the client was built for.
func (c *Client) Location() string { return c.location }

// GenerateImage issues one blocking generation request and returns the
// raw image bytes of the response.
func (c *Client) GenerateImage(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, errors.New("prompt is required")
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = config.DefaultModel
	}
	count := req.Count
	if count <= 0 {
		count = 1
	}

	resp, err := c.genai.Models.GenerateImages(ctx, model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages:   count,
		IncludeRAIReason: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	result := &Result{}
	for _, generated := range resp.GeneratedImages {
		if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			continue
		}
		result.Images = append(result.Images, Image{
			Data:     generated.Image.ImageBytes,
			MIMEType: generated.Image.MIMEType,
		})
	}
	if len(result.Images) == 0 {
		if reason := raiReason(resp); reason != "" {
			return nil, fmt.Errorf("no image returned: %s", reason)
		}
		return nil, errors.New("no image returned by the API")
	}
	return result, nil
}

func raiReason(resp *genai.GenerateImagesResponse) string {
	for _, generated := range resp.GeneratedImages {
		if generated != nil && generated.RAIFilteredReason != "" {
			return generated.RAIFilteredReason
		}
	}
	return ""
}
