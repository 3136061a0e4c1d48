package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/Benny93/chassis/internal/config"
	"github.com/Benny93/chassis/internal/frames"
	"github.com/Benny93/chassis/internal/parsers"
	"github.com/Benny93/chassis/internal/sdf"
	"github.com/Benny93/chassis/internal/storage"
)

// DocumentReport holds the processing results for one document.
type DocumentReport struct {
	// Entry is the walked file this report describes.
	Entry FileEntry

	// Root is the parsed document. Nil when the content was not usable
	// at all; Errors then carries the reason.
	Root *sdf.Root

	// Models holds the frame analysis of every model in the document,
	// nested models included.
	Models []frames.ModelReport

	// Errors accumulates parse and analysis diagnostics.
	Errors sdf.Errors
}

// PipelineResult summarizes a pipeline run.
type PipelineResult struct {
	Documents    int     `json:"documents"`
	Models       int     `json:"models"`
	Frames       int     `json:"frames"`
	Resolved     int     `json:"resolved"`
	Diagnostics  int     `json:"diagnostics"`
	DurationSecs float64 `json:"duration_secs"`
}

// ProgressCallback is called with phase name and progress (0.0-1.0).
type ProgressCallback func(phase string, progress float64)

// RunPipeline runs the full ingestion pipeline: walk the workspace, parse
// every document, analyze frame semantics, and store the results.
func RunPipeline(
	ctx context.Context,
	rootPath string,
	store storage.StorageBackend,
	cfg *config.Config,
	progress ProgressCallback,
) ([]DocumentReport, *PipelineResult, error) {
	start := time.Now()
	result := &PipelineResult{}

	if cfg == nil {
		cfg = config.Default()
	}

	// Phase 1: File walking
	if progress != nil {
		progress("Walking files", 0.0)
	}
	patterns, _ := loadGitignore(rootPath)
	entries, err := WalkWorkspace(rootPath, cfg, patterns)
	if err != nil {
		return nil, nil, fmt.Errorf("walking workspace: %w", err)
	}
	result.Documents = len(entries)
	if progress != nil {
		progress("Walking files", 1.0)
	}

	// Phase 2: Parsing
	if progress != nil {
		progress("Parsing documents", 0.0)
	}
	reports := ParseDocuments(entries)
	if progress != nil {
		progress("Parsing documents", 1.0)
	}

	// Phase 3: Frame analysis
	if progress != nil {
		progress("Analyzing frames", 0.0)
	}
	AnalyzeFrames(reports)
	if progress != nil {
		progress("Analyzing frames", 1.0)
	}

	for i := range reports {
		result.Models += len(reports[i].Models)
		result.Diagnostics += len(reports[i].Errors)
		for _, m := range reports[i].Models {
			result.Frames += len(m.Frames)
			for _, f := range m.Frames {
				if f.Resolved {
					result.Resolved++
				}
			}
		}
	}

	// Phase 4: Storage
	if store != nil {
		if progress != nil {
			progress("Storing documents", 0.0)
		}
		for i := range reports {
			if err := StoreDocument(ctx, store, cfg, &reports[i]); err != nil {
				return nil, nil, fmt.Errorf("storing %s: %w", reports[i].Entry.RelPath, err)
			}
		}
		if progress != nil {
			progress("Storing documents", 1.0)
		}
	}

	result.DurationSecs = time.Since(start).Seconds()

	return reports, result, nil
}

// ParseDocuments parses every walked document and collects diagnostics.
func ParseDocuments(entries []FileEntry) []DocumentReport {
	reports := make([]DocumentReport, 0, len(entries))

	for _, entry := range entries {
		parser := parsers.ForPath(entry.RelPath)
		if parser == nil {
			continue
		}

		report := DocumentReport{Entry: entry}
		root, errs := parser.Parse(entry.RelPath, entry.Content)
		report.Root = root
		report.Errors = append(report.Errors, errs...)

		reports = append(reports, report)
	}

	return reports
}

// AnalyzeFrames runs frame analysis on every parsed document. Model
// diagnostics are folded into the document errors so a stored document
// carries everything that was found in it.
func AnalyzeFrames(reports []DocumentReport) {
	for i := range reports {
		if reports[i].Root == nil {
			continue
		}

		reports[i].Models = frames.Analyze(reports[i].Root)
		for _, m := range reports[i].Models {
			reports[i].Errors = append(reports[i].Errors, m.Errors...)
		}
	}
}

// BuildRecords converts a document report into its storage records.
func BuildRecords(report *DocumentReport) (*storage.DocumentRecord, []storage.FrameRecord) {
	doc := &storage.DocumentRecord{
		Path:      report.Entry.RelPath,
		Digest:    report.Entry.Digest,
		Errors:    report.Errors,
		IndexedAt: time.Now().UTC(),
	}
	if report.Root != nil {
		doc.Version = report.Root.Version
	}

	var records []storage.FrameRecord
	for _, m := range report.Models {
		doc.Models = append(doc.Models, m.Model)
		doc.LinkCount += m.LinkCount
		doc.JointCount += m.JointCount
		doc.FrameCount += len(m.Frames)

		for _, f := range m.Frames {
			rec := storage.FrameRecord{
				ID:         storage.FrameID(report.Entry.RelPath, m.Model, f.Name),
				DocPath:    report.Entry.RelPath,
				Model:      m.Model,
				Name:       f.Name,
				Kind:       string(f.Kind),
				AttachedTo: f.AttachedTo,
				RelativeTo: f.RelativeTo,
				RawPose:    f.RawPose.String(),
				Resolved:   f.Resolved,
			}
			if f.Resolved {
				rec.PoseInModel = f.PoseInModel.String()
			}
			records = append(records, rec)
		}
	}

	return doc, records
}

// StoreDocument writes one document report and its frame records to storage.
// The raw content is kept only when the workspace config allows it.
func StoreDocument(ctx context.Context, store storage.StorageBackend, cfg *config.Config, report *DocumentReport) error {
	doc, records := BuildRecords(report)

	var raw []byte
	if cfg == nil || cfg.StoreRaw {
		raw = report.Entry.Content
	}

	return store.PutDocument(ctx, doc, records, raw)
}
