package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kustudyhub/kustudyhub-api/internal/config"
	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"github.com/kustudyhub/kustudyhub-api/internal/services"
	"github.com/kustudyhub/kustudyhub-api/internal/sorter"
	"gorm.io/gorm"
)

var (
	errFileTooLarge          = errors.New("file exceeds the upload size limit")
	errUnsupportedType       = errors.New("unsupported file type")
	errNoUnitCode            = errors.New("no unit code given and none found in filename or document text")
	errConversionUnavailable = errors.New("office document conversion is not available")
)

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".xls":  true,
	".xlsx": true,
}

// UploadDocument accepts one multipart file plus an optional explicit
// unit_code. Without an explicit code the Code Extractor resolution order
// applies: filename first, then document text. Office documents are
// converted to PDF before relocation so the sorted tree stays all-PDF.
func UploadDocument(cfg *config.Config, relocator *sorter.Relocator, converter sorter.Converter, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_FILE",
					"message": "No file uploaded",
				},
			})
			return
		}

		doc, errCode, err := ingestUpload(c, cfg, relocator, converter, file, c.PostForm("unit_code"))
		if err != nil {
			status := http.StatusUnprocessableEntity
			if errCode == "INTERNAL_ERROR" {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    errCode,
					"message": err.Error(),
				},
			})
			return
		}

		go func() {
			if err := search.IndexDocument(*doc); err != nil {
				log.Printf("Failed to index document %s: %v", doc.ID, err)
			}
		}()

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    doc,
		})
	}
}

// BatchUploadDocuments accepts multiple files under the "files" form field
// and reports per-file results; a partial failure never fails the batch.
func BatchUploadDocuments(cfg *config.Config, relocator *sorter.Relocator, converter sorter.Converter, search *services.SearchService) gin.HandlerFunc {
	type fileResult struct {
		Filename string               `json:"filename"`
		Document *models.UnitDocument `json:"document,omitempty"`
		Error    string               `json:"error,omitempty"`
	}

	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid multipart form",
				},
			})
			return
		}

		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_FILE",
					"message": "No files uploaded",
				},
			})
			return
		}

		unitCode := c.PostForm("unit_code")
		results := make([]fileResult, 0, len(files))
		var created []models.UnitDocument

		for _, file := range files {
			doc, _, err := ingestUpload(c, cfg, relocator, converter, file, unitCode)
			if err != nil {
				results = append(results, fileResult{Filename: file.Filename, Error: err.Error()})
				continue
			}
			results = append(results, fileResult{Filename: file.Filename, Document: doc})
			created = append(created, *doc)
		}

		go func() {
			if err := search.IndexDocuments(created); err != nil {
				log.Printf("Failed to index uploaded documents: %v", err)
			}
		}()

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    results,
		})
	}
}

// ingestUpload stages a multipart file on disk, converts office documents
// to PDF, resolves the unit code and runs the regular relocation flow so
// HTTP uploads land in the same sorted tree, storage bucket and tables as
// the batch pipeline.
func ingestUpload(c *gin.Context, cfg *config.Config, relocator *sorter.Relocator, converter sorter.Converter, file *multipart.FileHeader, explicitCode string) (*models.UnitDocument, string, error) {
	if file.Size > cfg.MaxUploadSize {
		return nil, "FILE_TOO_LARGE", errFileTooLarge
	}
	if !allowedUploadExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		return nil, "UNSUPPORTED_TYPE", errUnsupportedType
	}

	// Stage under the media root so the final rename into the sorted tree
	// never crosses filesystems.
	if err := os.MkdirAll(cfg.MediaRoot, 0o755); err != nil {
		return nil, "INTERNAL_ERROR", err
	}
	stageDir, err := os.MkdirTemp(cfg.MediaRoot, ".upload-*")
	if err != nil {
		return nil, "INTERNAL_ERROR", err
	}
	defer os.RemoveAll(stageDir)

	stagedPath := filepath.Join(stageDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, stagedPath); err != nil {
		return nil, "INTERNAL_ERROR", err
	}

	if sorter.IsOfficeDocument(stagedPath) {
		if converter == nil {
			return nil, "CONVERSION_FAILED", errConversionUnavailable
		}
		pdfPath, err := converter.Convert(c.Request.Context(), stagedPath)
		if err != nil {
			return nil, "CONVERSION_FAILED", err
		}
		if err := os.Remove(stagedPath); err != nil {
			log.Printf("Failed to remove converted original %s: %v", stagedPath, err)
		}
		stagedPath = pdfPath
	}

	code := explicitCode
	if code == "" {
		var ok bool
		code, ok = sorter.ResolveCode(stagedPath,
			func(path string) (string, bool) { return sorter.CodeFromName(filepath.Base(path)) },
			sorter.CodeFromPDF,
		)
		if !ok {
			return nil, "NO_UNIT_CODE", errNoUnitCode
		}
	} else if cleaned, ok := sorter.CodeFromName(code); ok {
		code = cleaned
	}

	doc, err := relocator.Relocate(c.Request.Context(), stagedPath, code)
	if err != nil {
		return nil, "INTERNAL_ERROR", err
	}
	return doc, "", nil
}

// DownloadDocument redirects to the document's storage link.
func DownloadDocument(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		docID := c.Param("id")

		var document models.UnitDocument
		if err := db.First(&document, "id = ?", docID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Document not found",
				},
			})
			return
		}

		c.Redirect(http.StatusFound, document.Link)
	}
}

// Search queries the documents index, optionally filtered by unit code.
func Search(search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		unitCode := c.Query("unit_code")

		result, err := search.Search(query, unitCode)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Search failed",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result.Hits,
		})
	}
}
