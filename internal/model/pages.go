package model

// OCRSpan is a single recognized text span with its OCR confidence
type OCRSpan struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence,omitempty"` // 0-100, tesseract mean confidence
}

// PageExtraction holds everything Stage 1 produced for one PDF page:
// selectable text, OCR text and spans, and the rendered page image path.
// No inference happens here; it is raw material for Stage 2.
type PageExtraction struct {
	Source     string `json:"source"` // inspection_report or thermal_report
	PDFPath    string `json:"pdf_path"`
	PageNumber int    `json:"page_number"` // 1-based

	RawText  string    `json:"raw_text"`
	OCRText  string    `json:"ocr_text"`
	OCRSpans []OCRSpan `json:"ocr_spans"`

	PageImagePath string `json:"page_image_path,omitempty"`
}

// DocumentExtraction is the per-document Stage 1 output
type DocumentExtraction struct {
	Source  string           `json:"source"`
	PDFPath string           `json:"pdf_path"`
	Pages   []PageExtraction `json:"pages"`
}

// InputLayerDoc bundles both source documents; either may be absent
type InputLayerDoc struct {
	Inspection *DocumentExtraction `json:"inspection,omitempty"`
	Thermal    *DocumentExtraction `json:"thermal,omitempty"`
}
