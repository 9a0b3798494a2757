package sorter

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kustudyhub/kustudyhub-api/internal/models"
)

// Uploader pushes a local file to remote object storage under a
// unit-named folder and returns a durable link.
type Uploader interface {
	Upload(ctx context.Context, path string, folder string) (link string, err error)
}

// Store is the slice of the metadata store the relocator needs.
type Store interface {
	GetOrCreateUnit(code, defaultTitle string) (*models.UnitProfile, error)
	CreateDocument(doc *models.UnitDocument) error
}

// Relocator performs the combined relocation of one document: remote
// upload, metadata records, then the local move into the sorted tree.
type Relocator struct {
	sortedRoot string
	uploader   Uploader
	store      Store
}

func NewRelocator(sortedRoot string, uploader Uploader, store Store) *Relocator {
	return &Relocator{
		sortedRoot: sortedRoot,
		uploader:   uploader,
		store:      store,
	}
}

// Relocate uploads the file, records the unit and document, and moves the
// file into sorted/<code>/. Order matters: the upload comes first so a
// storage failure leaves the source untouched for a later retry, and the
// move comes last so a partially processed file is retried on the next run
// rather than lost. A re-run of an already relocated file is a no-op
// because the source path no longer exists.
func (r *Relocator) Relocate(ctx context.Context, srcPath, code string) (*models.UnitDocument, error) {
	unitDir := filepath.Join(r.sortedRoot, code)
	if err := os.MkdirAll(unitDir, 0o755); err != nil {
		return nil, fmt.Errorf("create unit directory: %w", err)
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}

	link, err := r.uploader.Upload(ctx, srcPath, code)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	unit, err := r.store.GetOrCreateUnit(code, code)
	if err != nil {
		log.Printf("Orphaned upload %s: unit record failed: %v", link, err)
		return nil, fmt.Errorf("get or create unit %s: %w", code, err)
	}

	fileName := filepath.Base(srcPath)
	doc := &models.UnitDocument{
		UnitID: unit.ID,
		Title:  strings.TrimSuffix(fileName, filepath.Ext(fileName)),
		Link:   link,
		SizeKB: info.Size() / 1024,
	}
	if IsPDF(srcPath) {
		if pages, err := PDFPageCount(srcPath); err == nil {
			doc.PageCount = &pages
		}
	}

	if err := r.store.CreateDocument(doc); err != nil {
		// The blob exists without a record now; keep the source in place
		// for retry and leave enough in the log to reconcile by hand.
		log.Printf("Orphaned upload %s: document record failed: %v", link, err)
		return nil, fmt.Errorf("create document record: %w", err)
	}

	destPath := filepath.Join(unitDir, fileName)
	if err := os.Rename(srcPath, destPath); err != nil {
		// Upload and records succeeded; the next run will re-process this
		// file and duplicate both. Known limitation, must not be silent.
		log.Printf("Move failed after upload+record for %s (duplicate risk on retry): %v", srcPath, err)
		return doc, fmt.Errorf("move to sorted tree: %w", err)
	}

	return doc, nil
}
