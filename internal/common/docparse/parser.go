// internal/common/docparse/parser.go

// Package docparse turns pitch documents into extraction records.
package docparse

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"
)

// Fetcher downloads document bytes from object storage.
type Fetcher interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type Parser struct {
	fetcher     Fetcher
	maxFileSize int64
	logger      logger.Logger
}

// NewParser builds a Parser. fetcher may be nil when documents always carry inline content.
func NewParser(fetcher Fetcher, maxFileSize int64, log logger.Logger) *Parser {
	return &Parser{
		fetcher:     fetcher,
		maxFileSize: maxFileSize,
		logger:      log.WithFields(map[string]interface{}{"component": "docparse"}),
	}
}

// Parse extracts a record from one document.
func (p *Parser) Parse(ctx context.Context, doc models.Document) (models.Record, error) {
	data, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	if p.maxFileSize > 0 && int64(len(data)) > p.maxFileSize {
		return nil, errors.NewDocumentParseFailedError(doc.Name,
			fmt.Errorf("document is %d bytes, limit is %d", len(data), p.maxFileSize))
	}

	text, err := ExtractText(doc, data)
	if err != nil {
		return nil, errors.NewDocumentParseFailedError(doc.Name, err)
	}

	record := ExtractFields(doc.Name, text)

	p.logger.Debug("document parsed", map[string]interface{}{
		"document": doc.Name,
		"bytes":    len(data),
		"sections": len(record),
	})

	return record, nil
}

func (p *Parser) load(ctx context.Context, doc models.Document) ([]byte, error) {
	if len(doc.Content) > 0 {
		return doc.Content, nil
	}
	if doc.StorageKey == "" {
		return nil, errors.NewDocumentParseFailedError(doc.Name, fmt.Errorf("document has no content or storage key"))
	}
	if p.fetcher == nil {
		return nil, errors.NewDocumentFetchFailedError(doc.StorageKey, fmt.Errorf("object storage is not configured"))
	}
	data, err := p.fetcher.Download(ctx, doc.StorageKey)
	if err != nil {
		return nil, errors.NewDocumentFetchFailedError(doc.StorageKey, err)
	}
	return data, nil
}

// ExtractText dispatches on content type, then file extension. Unknown kinds are read as text.
func ExtractText(doc models.Document, data []byte) (string, error) {
	switch Kind(doc) {
	case "pdf":
		return ExtractPDF(data)
	case "docx":
		return ExtractDOCX(data)
	default:
		return ExtractTXT(data)
	}
}

// Kind returns pdf, docx or txt.
func Kind(doc models.Document) string {
	ct := strings.ToLower(doc.ContentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return "pdf"
	case strings.Contains(ct, "wordprocessingml"):
		return "docx"
	case strings.HasPrefix(ct, "text/"):
		return "txt"
	}

	switch strings.ToLower(filepath.Ext(doc.Name)) {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	default:
		return "txt"
	}
}
