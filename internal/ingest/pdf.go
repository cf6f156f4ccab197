package ingest

import (
	"fmt"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"
)

// PDFDocument wraps a MuPDF document handle for per-page text extraction
// and page rendering.
type PDFDocument struct {
	doc  *fitz.Document
	path string
}

// OpenPDF opens a PDF for reading. Callers must Close it.
func OpenPDF(path string) (*PDFDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF %s: %w", path, err)
	}
	return &PDFDocument{doc: doc, path: path}, nil
}

// Close releases the underlying document handle.
func (p *PDFDocument) Close() error {
	return p.doc.Close()
}

// NumPages returns the page count.
func (p *PDFDocument) NumPages() int {
	return p.doc.NumPage()
}

// PageText extracts the selectable text layer of a page (0-based index).
// Scanned pages with no text layer return an empty string, not an error.
func (p *PDFDocument) PageText(pageIndex int) (string, error) {
	text, err := p.doc.Text(pageIndex)
	if err != nil {
		return "", fmt.Errorf("extract text from %s page %d: %w", p.path, pageIndex+1, err)
	}
	return text, nil
}

// RenderPageToPNG renders a page (0-based index) to a PNG file at the given
// DPI, for OCR and for report attachments.
func (p *PDFDocument) RenderPageToPNG(pageIndex, dpi int, outPath string) error {
	img, err := p.doc.ImageDPI(pageIndex, float64(dpi))
	if err != nil {
		return fmt.Errorf("render %s page %d: %w", p.path, pageIndex+1, err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	return nil
}
