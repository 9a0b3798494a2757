package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kustudyhub/kustudyhub-api/internal/config"
	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"github.com/kustudyhub/kustudyhub-api/internal/sorter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct{ calls int }

func (s *stubUploader) Upload(ctx context.Context, path string, folder string) (string, error) {
	s.calls++
	return "https://storage.local/studyhub/" + folder + "/" + filepath.Base(path), nil
}

type stubStore struct{ docs []*models.UnitDocument }

func (s *stubStore) GetOrCreateUnit(code, defaultTitle string) (*models.UnitProfile, error) {
	return &models.UnitProfile{ID: uuid.New(), Code: code, Title: defaultTitle}, nil
}

func (s *stubStore) CreateDocument(doc *models.UnitDocument) error {
	s.docs = append(s.docs, doc)
	return nil
}

// stubConverter writes a sibling .pdf for the given office document.
type stubConverter struct{ calls int }

func (s *stubConverter) Convert(ctx context.Context, inputPath string) (string, error) {
	s.calls++
	pdfPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".pdf"
	if err := os.WriteFile(pdfPath, []byte("converted"), 0o644); err != nil {
		return "", err
	}
	return pdfPath, nil
}

func newUploadContext(t *testing.T, filename string, contents []byte) *gin.Context {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.Request = req
	return c
}

func newUploadFixture(t *testing.T) (*config.Config, *sorter.Relocator, *stubStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	cfg := &config.Config{
		MediaRoot:     root,
		SortedDir:     filepath.Join(root, "sorted"),
		MaxUploadSize: 50 * 1024 * 1024,
	}
	store := &stubStore{}
	return cfg, sorter.NewRelocator(cfg.SortedDir, &stubUploader{}, store), store
}

// Office uploads must pass through the converter so the sorted tree only
// ever holds PDFs, exactly like the batch pipeline's.
func TestIngestUpload_ConvertsOfficeDocuments(t *testing.T) {
	cfg, relocator, store := newUploadFixture(t)
	conv := &stubConverter{}

	c := newUploadContext(t, "ICS201 assignment.docx", []byte("office bytes"))
	file, err := c.FormFile("file")
	require.NoError(t, err)

	doc, errCode, err := ingestUpload(c, cfg, relocator, conv, file, "")
	require.NoError(t, err)
	assert.Empty(t, errCode)

	assert.Equal(t, 1, conv.calls)
	assert.Equal(t, "ICS201 assignment", doc.Title)
	assert.FileExists(t, filepath.Join(cfg.SortedDir, "ICS201", "ICS201 assignment.pdf"))
	assert.NoFileExists(t, filepath.Join(cfg.SortedDir, "ICS201", "ICS201 assignment.docx"))
	require.Len(t, store.docs, 1)
}

func TestIngestUpload_PDFSkipsConversion(t *testing.T) {
	cfg, relocator, _ := newUploadFixture(t)
	conv := &stubConverter{}

	c := newUploadContext(t, "SMA191 cat.pdf", []byte("xxxx"))
	file, err := c.FormFile("file")
	require.NoError(t, err)

	doc, errCode, err := ingestUpload(c, cfg, relocator, conv, file, "")
	require.NoError(t, err)
	assert.Empty(t, errCode)

	assert.Zero(t, conv.calls)
	assert.Equal(t, "SMA191 cat", doc.Title)
	assert.FileExists(t, filepath.Join(cfg.SortedDir, "SMA191", "SMA191 cat.pdf"))
}

func TestIngestUpload_OfficeDocumentWithoutConverter(t *testing.T) {
	cfg, relocator, store := newUploadFixture(t)

	c := newUploadContext(t, "ICS201 assignment.docx", []byte("office bytes"))
	file, err := c.FormFile("file")
	require.NoError(t, err)

	_, errCode, err := ingestUpload(c, cfg, relocator, nil, file, "")
	assert.ErrorIs(t, err, errConversionUnavailable)
	assert.Equal(t, "CONVERSION_FAILED", errCode)
	assert.Empty(t, store.docs)
}
