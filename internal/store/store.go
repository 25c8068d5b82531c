// Package store persists run artifacts on local disk: one uuid-keyed
// directory per document run, so concurrent runs never share state.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/thesis-tools/go-thesis-formatter/internal/formatter"
	"github.com/thesis-tools/go-thesis-formatter/internal/style"
)

// Artifact file names inside a run directory.
const (
	NormalizedFile  = "normalized.docx"
	PreviewFile     = "preview.docx"
	PreviewHTMLFile = "preview.html"
	ReportFile      = "report.json"
	TemplateFile    = "template.json"
)

// Store places run directories under a root path.
type Store struct {
	root string
}

// New returns a store rooted at dir, creating it as needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact root: %w", err)
	}
	return &Store{root: dir}, nil
}

// Run is one document run's private artifact directory.
type Run struct {
	ID  string
	Dir string
}

// NewRun allocates a fresh run directory.
func (s *Store) NewRun() (*Run, error) {
	id := uuid.NewString()
	dir := filepath.Join(s.root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	return &Run{ID: id, Dir: dir}, nil
}

// SaveResult writes the run's artifacts. The preview files are skipped
// when preview generation failed upstream.
func (r *Run) SaveResult(res *formatter.Result) error {
	if err := r.writeFile(NormalizedFile, res.Normalized); err != nil {
		return err
	}
	if len(res.Preview) > 0 {
		if err := r.writeFile(PreviewFile, res.Preview); err != nil {
			return err
		}
	}
	if res.PreviewHTML != "" {
		if err := r.writeFile(PreviewHTMLFile, []byte(res.PreviewHTML)); err != nil {
			return err
		}
	}
	report, err := json.MarshalIndent(res.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return r.writeFile(ReportFile, report)
}

// SaveTemplate writes a style template next to a run's artifacts.
func (r *Run) SaveTemplate(tpl *style.Template) error {
	data, err := tpl.JSON()
	if err != nil {
		return err
	}
	return r.writeFile(TemplateFile, data)
}

// Path returns the absolute path of a named artifact.
func (r *Run) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

func (r *Run) writeFile(name string, data []byte) error {
	if err := os.WriteFile(r.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
