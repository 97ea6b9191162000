package storage

import (
	"context"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"go.uber.org/zap"
)

// LoadDocuments reads every listed document from src. A document that cannot
// be read is returned with Err set so the batch reports it as a failed item.
func LoadDocuments(ctx context.Context, src DocumentSource, logger *zap.Logger) ([]analysis.Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	objects, err := src.List(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("listed batch documents", zap.Stringer("source", src), zap.Int("count", len(objects)))

	docs := make([]analysis.Document, 0, len(objects))
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := src.Read(ctx, obj.Key)
		if err != nil {
			logger.Warn("failed to read document", zap.String("key", obj.Key), zap.Error(err))
		}
		docs = append(docs, analysis.Document{SourceID: obj.Name, Data: data, Err: err})
	}
	return docs, nil
}
