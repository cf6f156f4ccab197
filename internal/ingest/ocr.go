package ingest

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/propscan/ddrgen/internal/model"
)

// OCRResult is the recognized text of one page image plus the line spans
// that cleared the confidence threshold.
type OCRResult struct {
	Text  string
	Spans []model.OCRSpan
}

// OCRImageFile runs tesseract over a rendered page image. Line spans below
// confidenceThreshold (0-100) are dropped from both the span list and the
// joined text, so low-quality recognition noise never reaches extraction.
func OCRImageFile(imagePath string, confidenceThreshold float64) (*OCRResult, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set OCR image %s: %w", imagePath, err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR %s: %w", imagePath, err)
	}

	var spans []model.OCRSpan
	var lines []string
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" || box.Confidence < confidenceThreshold {
			continue
		}
		spans = append(spans, model.OCRSpan{Text: text, Confidence: box.Confidence})
		lines = append(lines, text)
	}

	return &OCRResult{
		Text:  strings.Join(lines, "\n"),
		Spans: spans,
	}, nil
}
