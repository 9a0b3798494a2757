package sorter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Converter turns an office document into a PDF. The production
// implementation shells out to LibreOffice; tests swap in a fake.
type Converter interface {
	Convert(ctx context.Context, inputPath string) (pdfPath string, err error)
}

// officeExtensions are the formats handed to the converter before a
// sorting pass. Everything else is either already a PDF or ignored.
var officeExtensions = map[string]bool{
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".xls":  true,
	".xlsx": true,
	".odt":  true,
	".odp":  true,
}

func IsOfficeDocument(path string) bool {
	return officeExtensions[strings.ToLower(filepath.Ext(path))]
}

func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// SofficeConverter converts office documents with a headless LibreOffice
// process. The output PDF lands next to the input file.
type SofficeConverter struct {
	binPath string
	timeout time.Duration
}

func NewSofficeConverter(binPath string) *SofficeConverter {
	if binPath == "" {
		binPath = "soffice"
	}
	return &SofficeConverter{
		binPath: binPath,
		timeout: 2 * time.Minute,
	}
}

func (c *SofficeConverter) Convert(ctx context.Context, inputPath string) (string, error) {
	outDir := filepath.Dir(inputPath)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binPath,
		"--headless",
		"--nologo",
		"--nolockcheck",
		"--norestore",
		"--convert-to", "pdf",
		"--outdir", outDir,
		inputPath,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("soffice convert failed: %w; out=%s", err, string(out))
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("soffice reported success but %s is missing: %w", pdfPath, err)
	}
	return pdfPath, nil
}
