package analysis

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of documents analyzed at once.
const DefaultConcurrency = 4

// NoTextMarker is the item error for documents without extractable text.
const NoTextMarker = "no text extracted"

// Document is one batch input. Text is used when set, otherwise Data is
// extracted according to the SourceID extension or ContentType. A document
// with Err set failed before analysis, for example while downloading.
type Document struct {
	SourceID    string
	Text        string
	Data        []byte
	ContentType string
	Err         error
}

// BatchOptions configures AnalyzeBatch.
type BatchOptions struct {
	Concurrency int
	MinScore    int
	// OnProgress is called once per finished document, never concurrently.
	OnProgress func(types.BatchProgress)
}

// AnalyzeBatch analyzes every document against jobDescription. Each document
// is isolated: a failure becomes an item error marker with an all-NotFound
// record and the batch continues. Items are sorted by score descending,
// keeping input order for ties. Only cancellation of ctx returns an error.
func (s *Service) AnalyzeBatch(ctx context.Context, docs []Document, jobDescription string, opts BatchOptions) (*types.BatchReport, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	items := make([]types.BatchItem, len(docs))
	var (
		mu        sync.Mutex
		completed int
	)
	report := func(item types.BatchItem) {
		mu.Lock()
		defer mu.Unlock()
		completed++
		if opts.OnProgress != nil {
			opts.OnProgress(types.BatchProgress{
				Completed: completed,
				Total:     len(docs),
				SourceID:  item.SourceID,
				Score:     item.Record.Score,
				Error:     item.Error,
			})
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, doc := range docs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			items[i] = s.analyzeItem(ctx, doc, jobDescription)
			report(items[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buildReport(items, opts.MinScore), nil
}

func (s *Service) analyzeItem(ctx context.Context, doc Document, jobDescription string) types.BatchItem {
	item := types.BatchItem{SourceID: doc.SourceID}
	if doc.Err != nil {
		return s.failItem(item, doc.Err)
	}

	text := doc.Text
	if text == "" && len(doc.Data) > 0 {
		extracted, err := ingestion.ExtractTextWithType(doc.SourceID, doc.ContentType, doc.Data)
		if err != nil {
			return s.failItem(item, err)
		}
		text = extracted.Text
	}

	record, err := s.AnalyzeResume(ctx, doc.SourceID, text, jobDescription)
	item.Record = record
	if err != nil {
		return s.failItem(item, err)
	}
	return item
}

func (s *Service) failItem(item types.BatchItem, err error) types.BatchItem {
	item.Record = extraction.NotFoundRecord(item.SourceID, s.Sections())
	item.Error = errorMarker(err)
	s.logger.Warn("batch item failed", zap.String("source", item.SourceID), zap.Error(err))
	return item
}

func errorMarker(err error) string {
	if errors.Is(err, ingestion.ErrEmptyText) {
		return NoTextMarker
	}
	return err.Error()
}

func buildReport(items []types.BatchItem, minScore int) *types.BatchReport {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Record.Score > items[j].Record.Score
	})

	shortlist := make([]types.BatchItem, 0, len(items))
	for _, item := range items {
		if !item.Failed() && item.Record.Score >= minScore {
			shortlist = append(shortlist, item)
		}
	}

	return &types.BatchReport{
		MinScore:  minScore,
		Items:     items,
		Shortlist: shortlist,
		Summary:   Summarize(items),
		CreatedAt: time.Now().UTC(),
	}
}

// Summarize computes the batch summary over successful items.
func Summarize(items []types.BatchItem) types.BatchSummary {
	summary := types.BatchSummary{Total: len(items)}
	total := 0
	for _, item := range items {
		if item.Failed() {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		total += item.Record.Score
		if summary.Succeeded == 1 || item.Record.Score > summary.TopScore {
			summary.TopScore = item.Record.Score
			summary.TopSource = item.SourceID
		}
	}
	if summary.Succeeded > 0 {
		summary.MeanScore = float64(total) / float64(summary.Succeeded)
	}
	return summary
}
