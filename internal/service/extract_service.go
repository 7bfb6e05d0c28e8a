package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"formpilot/internal/config"
	"formpilot/internal/domain"
	"formpilot/internal/port"
	recordvalidator "formpilot/internal/validator/record"
)

// DocumentUpload is the DTO for one uploaded source document.
type DocumentUpload struct {
	Kind   domain.DocumentKind
	File   multipart.File
	Header *multipart.FileHeader
}

// ExtractResult bundles everything one extraction run produced.
type ExtractResult struct {
	Token     string                    `json:"token"`
	Record    *domain.CaseRecord        `json:"record"`
	Status    domain.ExtractionStatus   `json:"status"`
	Model     string                    `json:"model,omitempty"`
	Documents []domain.DocumentMeta     `json:"documents"`
	Findings  []recordvalidator.Finding `json:"findings,omitempty"`
	ExpiresAt time.Time                 `json:"expires_at"`
}

// ExtractService turns uploaded documents into a stored, token-addressed
// case record.
type ExtractService interface {
	ExtractFromUploads(ctx context.Context, uploads []DocumentUpload) (*ExtractResult, error)
	ExtractDocuments(ctx context.Context, docs []domain.SourceDocument) (*ExtractResult, error)
}

type extractService struct {
	extractor port.RecordExtractor
	store     port.RecordStore
	validator *recordvalidator.Engine
	cfg       *config.Config
}

// NewExtractService creates an ExtractService implementation.
func NewExtractService(
	extractor port.RecordExtractor,
	store port.RecordStore,
	validator *recordvalidator.Engine,
	cfg *config.Config,
) ExtractService {
	return &extractService{
		extractor: extractor,
		store:     store,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *extractService) ExtractFromUploads(ctx context.Context, uploads []DocumentUpload) (*ExtractResult, error) {
	if len(uploads) == 0 {
		return nil, domain.ErrNoDocuments
	}
	if max := s.cfg.Upload.MaxDocuments; max > 0 && len(uploads) > max {
		return nil, fmt.Errorf("%w: %d uploaded, %d allowed", domain.ErrTooManyDocuments, len(uploads), max)
	}

	docs := make([]domain.SourceDocument, 0, len(uploads))
	for _, u := range uploads {
		doc, err := s.readUpload(u)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", u.Header.Filename, err)
		}
		docs = append(docs, *doc)
	}
	return s.ExtractDocuments(ctx, docs)
}

// readUpload validates one upload and buffers its content. Documents only
// ever live in memory; nothing is written to disk.
func (s *extractService) readUpload(u DocumentUpload) (*domain.SourceDocument, error) {
	if !u.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDocumentKind, u.Kind)
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(u.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.Upload.MaxFileSizeMB * 1024 * 1024
	if u.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(u.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte content type detection
	sniff := data
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	detected := http.DetectContentType(sniff)
	if _, ok := domain.AllowedContentTypes[detected]; !ok {
		return nil, fmt.Errorf("%w: detected %s", domain.ErrUnsupportedFileType, detected)
	}

	return &domain.SourceDocument{
		Kind:        u.Kind,
		FileName:    u.Header.Filename,
		ContentType: domain.AllowedFileTypes[fileType],
		FileType:    fileType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func (s *extractService) ExtractDocuments(ctx context.Context, docs []domain.SourceDocument) (*ExtractResult, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}

	record := &domain.CaseRecord{}
	model := ""
	var status domain.ExtractionStatus
	out, err := s.extractor.Extract(ctx, port.ExtractInput{Documents: docs})
	if err != nil {
		// Extraction failure degrades the result, it never fails the request.
		log.Printf("extractService.ExtractDocuments: extraction failed, continuing with empty record: %v", err)
		status = domain.ExtractionDegraded
	} else {
		if out.Record != nil {
			record = out.Record
		}
		model = out.ModelUsed
		status = domain.StatusForRecord(record)
	}

	findings := s.validator.Validate(record)

	metas := make([]domain.DocumentMeta, 0, len(docs))
	for i := range docs {
		metas = append(metas, docs[i].Meta())
	}

	now := time.Now().UTC()
	stored := &domain.StoredRecord{
		Token:     uuid.NewString(),
		Record:    record,
		Status:    status,
		Model:     model,
		Documents: metas,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.Records.TTL),
	}
	if err := s.store.Save(ctx, stored); err != nil {
		return nil, fmt.Errorf("saving record: %w", err)
	}

	log.Printf("extractService.ExtractDocuments: stored record %s (%s, %d/%d fields, model %s)",
		stored.Token, status, len(record.NonNullFields()), len(record.Fields()), model)

	return &ExtractResult{
		Token:     stored.Token,
		Record:    record,
		Status:    status,
		Model:     model,
		Documents: metas,
		Findings:  findings,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}
