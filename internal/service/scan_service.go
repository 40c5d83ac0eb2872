package service

import (
	"context"
	"errors"
	"strings"

	"tag_tracker_go/pkg/log"
	"tag_tracker_go/pkg/vision"
)

// ScanResult is what the scanner page gets back for one photo.
type ScanResult struct {
	// Text is the model's answer, verbatim.
	Text string
	// ImageData is the base64 payload with any data-URL header removed.
	ImageData string
	MediaType string
	// Fields is set only when all three labelled lines could be parsed.
	Fields *vision.TagFields
}

// ScanService forwards tag photos to the vision model.
type ScanService interface {
	Extract(ctx context.Context, image string) (*ScanResult, error)
}

type scanService struct {
	extractor vision.Extractor
}

// NewScanService accepts a nil extractor; every Extract call then fails
// with ErrExtractionFailed.
func NewScanService(extractor vision.Extractor) ScanService {
	return &scanService{extractor: extractor}
}

// Extract makes exactly one call to the vision model. Its answer is not
// validated; a best-effort parse is attached when it succeeds.
func (s *scanService) Extract(ctx context.Context, image string) (*ScanResult, error) {
	data, mediaType := vision.SplitDataURL(image)
	if strings.TrimSpace(data) == "" {
		return nil, invalidInput("image is required")
	}
	if s.extractor == nil {
		return nil, &extractionError{cause: errors.New("vision extractor is not configured (missing API key)")}
	}

	text, err := s.extractor.Extract(ctx, vision.Image{MediaType: mediaType, Data: data})
	if err != nil {
		return nil, &extractionError{cause: err}
	}

	result := &ScanResult{Text: text, ImageData: data, MediaType: mediaType}
	if fields, err := vision.ParseTagFields(text); err == nil {
		result.Fields = &fields
	} else {
		log.Debugw("Extraction answer not in the expected layout", "error", err)
	}
	return result, nil
}
