package sorter

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kustudyhub/kustudyhub-api/internal/models"
)

// EventSink receives the outcome of each processed file or folder.
// Implementations persist them for later review; a nil sink is allowed.
type EventSink interface {
	Record(event models.SortEvent)
}

type Options struct {
	UnsortedDir   string
	SortedDir     string
	IndividualDir string
	FacultyDir    string
}

// Outcome describes what happened to one path during a run.
type Outcome struct {
	Path     string `json:"path"`
	UnitCode string `json:"unit_code,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Report aggregates a full pipeline run. No per-file failure ever aborts
// the run; everything lands in one of these lists instead.
type Report struct {
	Sorted  []Outcome `json:"sorted"`
	Skipped []Outcome `json:"skipped"`
	Failed  []Outcome `json:"failed"`
}

// Pipeline orchestrates the three ingestion sources: the flat unsorted
// inbox, the per-unit individual-uploads tree, and the faculty-folder tree.
type Pipeline struct {
	opts       Options
	relocator  *Relocator
	classifier *Classifier
	converter  Converter
	resolvers  []CodeResolver
	events     EventSink
}

func NewPipeline(opts Options, relocator *Relocator, classifier *Classifier, converter Converter, events EventSink) *Pipeline {
	return &Pipeline{
		opts:       opts,
		relocator:  relocator,
		classifier: classifier,
		converter:  converter,
		resolvers: []CodeResolver{
			func(path string) (string, bool) { return CodeFromName(filepath.Base(path)) },
			CodeFromPDF,
		},
		events: events,
	}
}

// Run processes the three sources in sequence and returns the combined
// report. Sources whose root directory is unset or missing are skipped.
func (p *Pipeline) Run(ctx context.Context) *Report {
	report := &Report{}
	p.sortInbox(ctx, report)
	p.sortIndividual(ctx, report)
	p.sortFaculty(ctx, report)
	log.Printf("Sort run finished: %d sorted, %d skipped, %d failed",
		len(report.Sorted), len(report.Skipped), len(report.Failed))
	return report
}

// sortInbox handles the flat unsorted inbox: office docs are converted to
// PDF first, then each PDF goes through the resolver chain (filename, then
// document text) and is relocated. Files without a resolvable code stay
// where they are.
func (p *Pipeline) sortInbox(ctx context.Context, report *Report) {
	dir := p.opts.UnsortedDir
	if !dirExists(dir) {
		return
	}

	p.convertOfficeDocuments(ctx, dir, report)

	for _, path := range listFiles(dir, IsPDF) {
		code, ok := ResolveCode(path, p.resolvers...)
		if !ok {
			p.skip(report, path, "", "no unit code in filename or document text")
			continue
		}
		p.relocate(ctx, report, path, code)
	}
}

// sortIndividual handles the individual-uploads tree, where each
// subdirectory is named after a known unit code and no extraction is
// needed.
func (p *Pipeline) sortIndividual(ctx context.Context, report *Report) {
	root := p.opts.IndividualDir
	if !dirExists(root) {
		return
	}

	for _, entry := range listDirs(root) {
		code := strings.ToUpper(strings.TrimSpace(entry))
		unitDir := filepath.Join(root, entry)
		for _, path := range listFiles(unitDir, IsPDF) {
			p.relocate(ctx, report, path, code)
		}
	}
}

// sortFaculty handles faculty folders. The whole folder resolves to a
// single code first; an unmatched folder is skipped in full, none of its
// files are touched.
func (p *Pipeline) sortFaculty(ctx context.Context, report *Report) {
	root := p.opts.FacultyDir
	if !dirExists(root) {
		return
	}

	for _, entry := range listDirs(root) {
		code, ok := p.classifier.Classify(entry)
		if !ok {
			p.skipFolder(report, filepath.Join(root, entry),
				"folder name "+strconv.Quote(NormalizeFolderName(entry))+" matched no known unit")
			continue
		}

		folderDir := filepath.Join(root, entry)
		p.convertOfficeDocuments(ctx, folderDir, report)

		for _, path := range listFiles(folderDir, func(name string) bool { return !IsOfficeDocument(name) }) {
			p.relocate(ctx, report, path, code)
		}
	}
}

// convertOfficeDocuments converts every office document in dir to PDF.
// On success the original is deleted; on failure it is left untouched and
// excluded from this run.
func (p *Pipeline) convertOfficeDocuments(ctx context.Context, dir string, report *Report) {
	if p.converter == nil {
		return
	}
	for _, path := range listFiles(dir, IsOfficeDocument) {
		if _, err := p.converter.Convert(ctx, path); err != nil {
			p.skip(report, path, "", "conversion failed: "+err.Error())
			continue
		}
		if err := os.Remove(path); err != nil {
			log.Printf("Failed to remove converted original %s: %v", path, err)
		}
	}
}

func (p *Pipeline) relocate(ctx context.Context, report *Report, path, code string) {
	if _, err := p.relocator.Relocate(ctx, path, code); err != nil {
		report.Failed = append(report.Failed, Outcome{Path: path, UnitCode: code, Reason: err.Error()})
		p.record(models.SortEventFailed, path, code, err.Error())
		log.Printf("Failed to relocate %s under %s: %v", path, code, err)
		return
	}
	report.Sorted = append(report.Sorted, Outcome{Path: path, UnitCode: code})
	p.record(models.SortEventSorted, path, code, "")
	log.Printf("Sorted %s under %s", filepath.Base(path), code)
}

func (p *Pipeline) skip(report *Report, path, code, reason string) {
	report.Skipped = append(report.Skipped, Outcome{Path: path, UnitCode: code, Reason: reason})
	p.record(models.SortEventSkipped, path, code, reason)
	log.Printf("Skipped %s: %s", path, reason)
}

func (p *Pipeline) skipFolder(report *Report, path, reason string) {
	report.Skipped = append(report.Skipped, Outcome{Path: path, Reason: reason})
	p.record(models.SortEventFolderSkipped, path, "", reason)
	log.Printf("Skipped folder %s: %s", path, reason)
}

func (p *Pipeline) record(eventType models.SortEventType, path, code, detail string) {
	if p.events == nil {
		return
	}
	p.events.Record(models.SortEvent{
		EventType: eventType,
		Path:      path,
		UnitCode:  code,
		Detail:    detail,
	})
}

func dirExists(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// listFiles returns the regular files in dir (non-recursive) whose path
// satisfies match, sorted by name for deterministic runs.
func listFiles(dir string, match func(string) bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Failed to read %s: %v", dir, err)
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if match(path) {
			files = append(files, path)
		}
	}
	return files
}

func listDirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Failed to read %s: %v", dir, err)
		return nil
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs
}
