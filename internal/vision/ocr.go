package vision

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

const (
	// MaxDocumentSize bounds an uploaded ID document.
	MaxDocumentSize = 5 << 20

	defaultTimeout = 30 * time.Second
)

var (
	// ErrNoText is returned when the OCR provider recognized nothing.
	ErrNoText = errors.New("no text detected in the image")

	// ErrDetectionTimeout is returned when the OCR provider did not answer
	// within the extraction deadline.
	ErrDetectionTimeout = errors.New("text detection timed out")

	// ErrBadDocument is returned before any network call when the upload
	// violates the size or encoding constraints.
	ErrBadDocument = errors.New("document must be JPEG, PNG or PDF up to 5MB")
)

var acceptedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// ValidateDocument enforces the upload constraints locally, so a bad upload
// never reaches the OCR provider.
func ValidateDocument(data []byte) error {
	if len(data) == 0 || len(data) > MaxDocumentSize {
		return ErrBadDocument
	}
	if !acceptedTypes[sniffType(data)] {
		return ErrBadDocument
	}
	return nil
}

func sniffType(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i != -1 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

// TextDetector is the OCR provider boundary. The Google client satisfies it;
// tests substitute a canned implementation.
type TextDetector interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

// GoogleDetector wraps the Vision API text-detection call.
type GoogleDetector struct {
	client *vision.ImageAnnotatorClient
}

func NewGoogleDetector(ctx context.Context, credentialsFile string) (*GoogleDetector, error) {
	var (
		client *vision.ImageAnnotatorClient
		err    error
	)
	if credentialsFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init OCR client: %w", err)
	}
	return &GoogleDetector{client: client}, nil
}

func (d *GoogleDetector) DetectText(ctx context.Context, image []byte) (string, error) {
	img := &visionpb.Image{Content: image}
	anns, err := d.client.DetectTexts(ctx, img, nil, 1)
	if err != nil {
		return "", fmt.Errorf("vision text detection failed: %w", err)
	}
	if len(anns) == 0 || anns[0].Description == "" {
		return "", ErrNoText
	}
	return anns[0].Description, nil
}

func (d *GoogleDetector) Close() error { return d.client.Close() }

// Extractor turns a raw document image into the structured field set used by
// reconciliation.
type Extractor struct {
	detector TextDetector
	timeout  time.Duration
}

func NewExtractor(detector TextDetector) *Extractor {
	return &Extractor{detector: detector, timeout: defaultTimeout}
}

// Extract runs OCR and parses the labeled lines out of the recognized text.
// A provider timeout surfaces as an extraction failure, not a hang.
func (e *Extractor) Extract(ctx context.Context, image []byte) (ExtractedFields, error) {
	if err := ValidateDocument(image); err != nil {
		return ExtractedFields{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.detector.DetectText(ctx, image)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ExtractedFields{}, ErrDetectionTimeout
		}
		return ExtractedFields{}, err
	}
	return ParseIDCardText(text), nil
}
