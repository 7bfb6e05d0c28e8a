package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"formpilot/internal/domain"
	"formpilot/internal/export"
	"formpilot/internal/port"
)

// ExportFile is a rendered record export ready for download.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// RecordService defines read, delete, and export access to stored records.
type RecordService interface {
	Get(ctx context.Context, token string) (*domain.StoredRecord, error)
	Delete(ctx context.Context, token string) error
	Export(ctx context.Context, token, format string) (*ExportFile, error)
}

type recordService struct {
	store port.RecordStore
}

// NewRecordService creates a RecordService implementation.
func NewRecordService(store port.RecordStore) RecordService {
	return &recordService{store: store}
}

func (s *recordService) Get(ctx context.Context, token string) (*domain.StoredRecord, error) {
	return s.store.Get(ctx, token)
}

func (s *recordService) Delete(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, token); err != nil {
		return err
	}
	log.Printf("recordService.Delete: deleted record %s", token)
	return nil
}

// Export renders the record in the requested format. An empty format defaults
// to CSV.
func (s *recordService) Export(ctx context.Context, token, format string) (*ExportFile, error) {
	stored, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	switch format {
	case "", "csv":
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, stored); err != nil {
			return nil, fmt.Errorf("rendering csv: %w", err)
		}
		return &ExportFile{
			FileName:    export.BuildFilename(stored.Token, "csv"),
			ContentType: "text/csv; charset=utf-8",
			Data:        buf.Bytes(),
		}, nil
	case "xlsx":
		data, err := export.BuildXLSX(stored)
		if err != nil {
			return nil, fmt.Errorf("rendering xlsx: %w", err)
		}
		return &ExportFile{
			FileName:    export.BuildFilename(stored.Token, "xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrExportFormat, format)
	}
}
