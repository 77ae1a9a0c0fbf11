// Package parser extracts plain text from uploaded files. Each
// supported format is one Extractor; a Registry dispatches on the file
// extension. Unknown extensions degrade to a marker string, never an
// error, so uploads cannot fail on format alone.
package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"cortex-backend/internal/models"
)

// Extractor pulls plain text out of one file format.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, filename string, data []byte) (string, error)

func (f ExtractorFunc) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	return f(ctx, filename, data)
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tiff": true,
}

// IsImage reports whether the filename carries an OCR-handled image
// extension.
func IsImage(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Registry maps file extensions to extractors.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry builds the default registry. Image extensions are routed
// to ocr when it is non-nil.
func NewRegistry(ocr Extractor) *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	r.Register(".pdf", ExtractorFunc(extractPDF))
	r.Register(".docx", ExtractorFunc(extractDOCX))
	r.Register(".pptx", ExtractorFunc(extractPPTX))
	r.Register(".xlsx", ExtractorFunc(extractXLSX))
	r.Register(".ods", ExtractorFunc(extractODS))
	r.Register(".txt", ExtractorFunc(extractText))
	r.Register(".md", ExtractorFunc(extractMarkdown))
	if ocr != nil {
		for ext := range imageExtensions {
			r.Register(ext, ocr)
		}
	}
	return r
}

func (r *Registry) Register(ext string, e Extractor) {
	r.byExt[strings.ToLower(ext)] = e
}

// Extract dispatches on the filename's extension. Unknown extensions
// return the unsupported-format marker with a nil error.
func (r *Registry) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	e, ok := r.byExt[ext]
	if !ok {
		return models.UnsupportedFormatText, nil
	}
	return e.Extract(ctx, filename, data)
}

func extractPDF(_ context.Context, _ string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}
	return text.String(), nil
}

func extractDOCX(_ context.Context, _ string, data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return xmlRunText(content, "w:t"), nil
}

func extractPPTX(_ context.Context, _ string, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var slides []string
	for _, file := range zr.File {
		if strings.HasPrefix(file.Name, "ppt/slides/slide") && strings.HasSuffix(file.Name, ".xml") {
			slides = append(slides, file.Name)
		}
	}
	// zip order is arbitrary; keep slide text in slide order
	// (shorter names first so slide2 sorts before slide10)
	sort.Slice(slides, func(a, b int) bool {
		if len(slides[a]) != len(slides[b]) {
			return len(slides[a]) < len(slides[b])
		}
		return slides[a] < slides[b]
	})

	var text strings.Builder
	for _, name := range slides {
		f, err := zr.Open(name)
		if err != nil {
			continue
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(f)
		f.Close()
		if err != nil {
			continue
		}
		slideText := xmlRunText(buf.String(), "a:t")
		if strings.TrimSpace(slideText) != "" {
			text.WriteString(slideText)
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}

func extractXLSX(_ context.Context, _ string, data []byte) (string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, sheet := range f.Sheets {
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}

func extractODS(_ context.Context, _ string, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer f.Close()

	var text strings.Builder
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
	}
	return text.String(), nil
}

func extractText(_ context.Context, _ string, data []byte) (string, error) {
	return string(data), nil
}

// xmlRunText collects the character data of every <tag>...</tag> run.
// Attribute-carrying and self-closing opening tags are handled; nothing
// else of the XML is interpreted.
func xmlRunText(xmlContent, tag string) string {
	var text strings.Builder
	openTag := "<" + tag
	closeTag := "</" + tag + ">"
	parts := strings.Split(xmlContent, openTag)
	for i, part := range parts {
		if i == 0 || part == "" {
			continue
		}
		// reject longer tag names sharing the prefix, e.g. w:tbl for w:t
		if part[0] != '>' && part[0] != ' ' && part[0] != '/' {
			continue
		}
		gt := strings.Index(part, ">")
		if gt < 0 {
			continue
		}
		if gt > 0 && part[gt-1] == '/' {
			continue
		}
		rest := part[gt+1:]
		end := strings.Index(rest, closeTag)
		if end >= 0 {
			text.WriteString(rest[:end] + " ")
		}
	}
	return text.String()
}
