// Command populate runs the document-to-form pipeline once from the command
// line: extract a case record from the given documents (or load one from a
// JSON file), then fill the target form in a browser session and print the
// session artifact.
//
// Usage:
//
//	populate -passport passport.png -rep-form g28.pdf
//	populate -record record.json -form-url https://example.com/form
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"formpilot/internal/browser"
	"formpilot/internal/config"
	"formpilot/internal/domain"
	"formpilot/internal/email/noop"
	"formpilot/internal/extractor"
	_ "formpilot/internal/extractor/claude"
	_ "formpilot/internal/extractor/gemini"
	_ "formpilot/internal/extractor/openai"
	"formpilot/internal/mapper"
	"formpilot/internal/port"
	"formpilot/internal/repository/memory"
	"formpilot/internal/service"
	localstorage "formpilot/internal/storage/local"
	recordvalidator "formpilot/internal/validator/record"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		passportPath = flag.String("passport", "", "path to the passport document (pdf/jpg/png/webp)")
		repFormPath  = flag.String("rep-form", "", "path to the G-28 representation form")
		recordPath   = flag.String("record", "", "path to a case record JSON file (skips extraction)")
		formURL      = flag.String("form-url", "", "target form URL (defaults to the configured form)")
		outDir       = flag.String("out", "", "directory for run artifacts (defaults to the configured artifact dir)")
		timeout      = flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	)
	flag.Parse()

	if *passportPath == "" && *repFormPath == "" && *recordPath == "" {
		flag.Usage()
		return fmt.Errorf("at least one of -passport, -rep-form, -record is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *outDir != "" {
		cfg.Artifacts.Backend = "local"
		cfg.Artifacts.LocalDir = *outDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store := memory.NewRecordStore(cfg.Records.TTL, cfg.Records.CleanupInterval)

	record, err := resolveRecord(ctx, cfg, store, *recordPath, *passportPath, *repFormPath)
	if err != nil {
		return err
	}

	browserProvider, err := browser.NewProvider(&cfg.Browser)
	if err != nil {
		return fmt.Errorf("building browser provider: %w", err)
	}
	fieldMapper, err := mapper.BuildFromConfig(&cfg.Mapper)
	if err != nil {
		return fmt.Errorf("building mapper: %w", err)
	}
	artifacts, err := localstorage.NewArtifactStore(cfg.Artifacts.LocalDir)
	if err != nil {
		return fmt.Errorf("building artifact store: %w", err)
	}

	populateSvc := service.NewPopulateService(store, browserProvider, fieldMapper, artifacts, noop.NewNotifier(), cfg)

	artifact, err := populateSvc.Populate(ctx, &domain.PopulateRequest{
		Record:  record,
		FormURL: *formURL,
	})
	if err != nil {
		return fmt.Errorf("populate run failed: %w", err)
	}

	out, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// resolveRecord loads the record from a JSON file when -record is given,
// otherwise extracts one from the supplied documents.
func resolveRecord(ctx context.Context, cfg *config.Config, store port.RecordStore, recordPath, passportPath, repFormPath string) (*domain.CaseRecord, error) {
	if recordPath != "" {
		data, err := os.ReadFile(recordPath)
		if err != nil {
			return nil, fmt.Errorf("reading record file: %w", err)
		}
		record := &domain.CaseRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return nil, fmt.Errorf("decoding record file: %w", err)
		}
		return record, nil
	}

	var docs []domain.SourceDocument
	for _, in := range []struct {
		path string
		kind domain.DocumentKind
	}{
		{passportPath, domain.DocumentPassport},
		{repFormPath, domain.DocumentRepForm},
	} {
		if in.path == "" {
			continue
		}
		doc, err := loadDocument(in.path, in.kind)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	recordExtractor, err := extractor.BuildFromConfig(&cfg.Extractor)
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}
	extractSvc := service.NewExtractService(recordExtractor, store, recordvalidator.NewEngine(), cfg)

	result, err := extractSvc.ExtractDocuments(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	log.Printf("extracted %d/%d fields (%s) from %d documents",
		len(result.Record.NonNullFields()), len(result.Record.Fields()), result.Status, len(docs))
	for _, f := range result.Findings {
		log.Printf("validation %s: %s", f.Severity, f.Message)
	}
	return result.Record, nil
}

// loadDocument reads one document from disk into memory.
func loadDocument(path string, kind domain.DocumentKind) (*domain.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, path)
	}
	sniff := data
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(sniff)]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, path)
	}
	return &domain.SourceDocument{
		Kind:        kind,
		FileName:    filepath.Base(path),
		ContentType: domain.AllowedFileTypes[fileType],
		FileType:    fileType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
