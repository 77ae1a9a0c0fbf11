package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cortex-backend/internal/models"
)

func TestRegistryExtractText(t *testing.T) {
	r := NewRegistry(nil)
	got, err := r.Extract(context.Background(), "notes.TXT", []byte("plain contents"))
	require.NoError(t, err)
	assert.Equal(t, "plain contents", got)
}

func TestRegistryUnknownExtensionDegrades(t *testing.T) {
	r := NewRegistry(nil)
	got, err := r.Extract(context.Background(), "archive.tar.gz", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, models.UnsupportedFormatText, got)
}

func TestRegistryImagesNeedOCRExtractor(t *testing.T) {
	// no OCR extractor wired in: images are unsupported
	r := NewRegistry(nil)
	got, err := r.Extract(context.Background(), "scan.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Equal(t, models.UnsupportedFormatText, got)
}

type fakeOCR struct{ text string }

func (f fakeOCR) Extract(_ context.Context, _ string, _ []byte) (string, error) {
	return f.text, nil
}

func TestRegistryRoutesImagesToOCR(t *testing.T) {
	r := NewRegistry(fakeOCR{text: "transcribed"})
	for _, name := range []string{"a.png", "b.jpg", "c.JPEG", "d.bmp", "e.tiff"} {
		got, err := r.Extract(context.Background(), name, nil)
		require.NoError(t, err)
		assert.Equal(t, "transcribed", got)
	}
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("photo.PNG"))
	assert.True(t, IsImage("photo.jpeg"))
	assert.False(t, IsImage("report.pdf"))
	assert.False(t, IsImage("noext"))
}

func TestExtractMarkdownKeepsProseDropsMarkup(t *testing.T) {
	src := []byte("# Title\n\nSome *emphasised* prose.\n\n- item one\n- item two\n")
	got, err := extractMarkdown(context.Background(), "readme.md", src)
	require.NoError(t, err)

	assert.Contains(t, got, "Title")
	assert.Contains(t, got, "Some emphasised prose.")
	assert.Contains(t, got, "item one")
	assert.NotContains(t, got, "#")
	assert.NotContains(t, got, "*")
}

func TestExtractPPTXReadsSlideRunsInOrder(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	// deliberately written out of order
	for _, slide := range []struct{ name, body string }{
		{"ppt/slides/slide2.xml", `<p:sld><a:t>second slide</a:t></p:sld>`},
		{"ppt/slides/slide1.xml", `<p:sld><a:t>first</a:t><a:t xml:space="preserve">slide</a:t></p:sld>`},
		{"ppt/notes/ignored.xml", `<a:t>notes text</a:t>`},
	} {
		w, err := zw.Create(slide.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(slide.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	got, err := extractPPTX(context.Background(), "deck.pptx", buf.Bytes())
	require.NoError(t, err)

	assert.Contains(t, got, "first slide")
	assert.Contains(t, got, "second slide")
	assert.NotContains(t, got, "notes text")
	assert.Less(t, bytes.Index([]byte(got), []byte("first")), bytes.Index([]byte(got), []byte("second")))
}

func TestExtractPPTXRejectsNonZip(t *testing.T) {
	_, err := extractPPTX(context.Background(), "deck.pptx", []byte("not a zip"))
	assert.Error(t, err)
}

func TestXMLRunText(t *testing.T) {
	xml := `<w:body><w:tbl/><w:t>Hello</w:t><w:t xml:space="preserve"> world</w:t><w:t/></w:body>`
	got := xmlRunText(xml, "w:t")
	assert.Equal(t, "Hello  world ", got)
}

func TestXMLRunTextIgnoresLongerTagNames(t *testing.T) {
	xml := `<a:tbl>table stuff</a:tbl><a:t>kept</a:t>`
	assert.Equal(t, "kept ", xmlRunText(xml, "a:t"))
}
