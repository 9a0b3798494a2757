package sorter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxScanPages caps how much of a document is parsed when hunting for a
// unit code. Codes show up on cover pages; parsing a 400-page scan for one
// would be wasted work.
const maxScanPages = 3

// TextFromPDF extracts the embedded text of at most the first maxPages
// pages, concatenated in page order. Pages with no readable text layer are
// skipped.
func TextFromPDF(path string, maxPages int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	last := r.NumPage()
	if maxPages > 0 && last > maxPages {
		last = maxPages
	}

	var text strings.Builder
	for i := 1; i <= last; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(pageText)
	}
	return text.String(), nil
}

// CodeFromPDF scans the first pages of a PDF for a unit code. It fails
// closed: real-world PDFs are frequently scanned images or have corrupt
// streams, and a file we cannot read is simply a file without a code.
func CodeFromPDF(path string) (string, bool) {
	text, err := textFromPDFSafe(path)
	if err != nil || text == "" {
		return "", false
	}
	return CodeFromName(text)
}

// textFromPDFSafe converts panics from the pdf parser into errors; the
// library is known to panic on malformed xref tables.
func textFromPDFSafe(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()
	return TextFromPDF(path, maxScanPages)
}

// PDFPageCount returns the page count of a PDF, best effort.
func PDFPageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return r.NumPage(), nil
}
