package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"formpilot/internal/config"
	"formpilot/internal/domain"
	"formpilot/internal/filler"
	"formpilot/internal/markup"
	"formpilot/internal/matcher"
	"formpilot/internal/port"
)

// PopulateService drives a populate run end to end: resolve the record, open
// a browser session, match fields to form elements, execute the fill plan,
// and leave artifacts behind.
type PopulateService interface {
	Populate(ctx context.Context, req *domain.PopulateRequest) (*domain.SessionArtifact, error)
}

type populateService struct {
	store     port.RecordStore
	browser   port.BrowserProvider
	mapper    port.FieldMapper
	matcher   *matcher.Deterministic
	executor  *filler.Executor
	artifacts port.ArtifactStore
	notifier  port.RunNotifier
	cfg       *config.Config
}

// NewPopulateService creates a PopulateService implementation.
func NewPopulateService(
	store port.RecordStore,
	browser port.BrowserProvider,
	fieldMapper port.FieldMapper,
	artifacts port.ArtifactStore,
	notifier port.RunNotifier,
	cfg *config.Config,
) PopulateService {
	return &populateService{
		store:     store,
		browser:   browser,
		mapper:    fieldMapper,
		matcher:   matcher.NewDeterministic(),
		executor:  filler.NewExecutor(cfg.Browser.OperationTimeout),
		artifacts: artifacts,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *populateService) Populate(ctx context.Context, req *domain.PopulateRequest) (*domain.SessionArtifact, error) {
	record, status, err := s.resolveRecord(ctx, req)
	if err != nil {
		return nil, err
	}

	formURL := ""
	if req != nil {
		formURL = req.FormURL
	}
	if formURL == "" {
		formURL = s.cfg.Form.DefaultURL
	}

	runID := uuid.NewString()
	artifact := &domain.SessionArtifact{
		RunID:            runID,
		FormURL:          formURL,
		ExtractionStatus: status,
	}

	log.Printf("populateService.Populate: run %s starting against %s", runID, formURL)

	page, err := s.browser.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := page.Close(context.Background()); cerr != nil {
			log.Printf("populateService.Populate: closing session: %v", cerr)
		}
	}()

	artifact.SessionID = page.SessionID()
	artifact.ViewerURL = page.ViewerURL()

	if err := page.Navigate(ctx, formURL); err != nil {
		return nil, err
	}

	html, err := page.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMarkupUnavailable, err)
	}
	artifact.MarkupLocation = s.putArtifact(ctx, runID, "form.html", "text/html; charset=utf-8", []byte(html))

	inspector, err := markup.New(s.cfg.Matcher.Inspector, html)
	if err != nil {
		return nil, fmt.Errorf("building inspector: %w", err)
	}

	matched := s.matcher.Match(inspector, record)
	modelOps := s.mapUnresolved(ctx, runID, artifact, html, matched.Unresolved)
	merged := matcher.Merge(matched.Operations, modelOps, matched.Derived)

	artifact.DeterministicMatched = len(matched.Operations)
	artifact.ModelMappedAdditional = countModelAdded(matched.Operations, modelOps)
	artifact.EligibilityCheckIssued = matched.Derived != nil

	result := s.executor.Apply(ctx, page, merged)
	artifact.AttemptedCount = len(merged)
	artifact.FilledCount = result.Filled
	artifact.Results = result.Results

	// Give the page a beat to run its input handlers before capturing it.
	if d := s.cfg.Browser.PostFillDelay; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
		}
	}

	if png, serr := page.Screenshot(ctx); serr != nil {
		log.Printf("populateService.Populate: screenshot failed: %v", serr)
	} else {
		artifact.ScreenshotLocation = s.putArtifact(ctx, runID, "form-filled.png", "image/png", png)
	}

	if s.notifier != nil {
		if nerr := s.notifier.SendRunSummary(ctx, artifact); nerr != nil {
			log.Printf("populateService.Populate: run summary notification failed: %v", nerr)
		}
	}

	log.Printf("populateService.Populate: run %s finished: %d/%d operations applied (session %s)",
		runID, result.Filled, len(merged), artifact.SessionID)

	return artifact, nil
}

// resolveRecord picks the record for the run. An inline record wins over a
// token; a token that resolves to nothing fails the run.
func (s *populateService) resolveRecord(ctx context.Context, req *domain.PopulateRequest) (*domain.CaseRecord, domain.ExtractionStatus, error) {
	if req == nil {
		return nil, "", domain.ErrNoRecord
	}
	if req.Record != nil {
		return req.Record, domain.StatusForRecord(req.Record), nil
	}
	if req.Token == "" {
		return nil, "", domain.ErrNoRecord
	}
	stored, err := s.store.Get(ctx, req.Token)
	if err != nil {
		return nil, "", err
	}
	return stored.Record, stored.Status, nil
}

// mapUnresolved asks the model tier to place fields the pattern table could
// not. Mapper failures degrade to zero extra operations, they never fail the
// run.
func (s *populateService) mapUnresolved(ctx context.Context, runID string, artifact *domain.SessionArtifact, html string, unresolved []domain.FieldValue) []domain.FillOperation {
	if len(unresolved) == 0 || s.mapper == nil {
		return nil
	}
	out, err := s.mapper.MapFields(ctx, port.MapInput{Markup: html, Fields: unresolved})
	if err != nil {
		log.Printf("populateService.mapUnresolved: model mapping failed, continuing without: %v", err)
		return nil
	}
	if len(out.RawJSON) > 0 {
		artifact.MapperOutputLocation = s.putArtifact(ctx, runID, "mapper-response.json", "application/json", out.RawJSON)
	}
	log.Printf("populateService.mapUnresolved: model %s proposed %d operations for %d unresolved fields",
		out.ModelUsed, len(out.Operations), len(unresolved))
	return out.Operations
}

// putArtifact stores one run artifact, returning its location or "" when it
// could not be written. Artifact writes are best-effort and never fail a run.
func (s *populateService) putArtifact(ctx context.Context, runID, name, contentType string, data []byte) string {
	if s.artifacts == nil || len(data) == 0 {
		return ""
	}
	out, err := s.artifacts.Put(ctx, port.PutArtifactInput{
		RunID:       runID,
		Name:        name,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		log.Printf("populateService.putArtifact: storing %s: %v", name, err)
		return ""
	}
	return out.Location
}

// countModelAdded counts the model operations that survive the merge, using
// the same first-selector-wins rule the merge applies.
func countModelAdded(deterministic, model []domain.FillOperation) int {
	seen := make(map[string]bool, len(deterministic))
	for _, op := range deterministic {
		seen[op.Selector] = true
	}
	added := 0
	for _, op := range model {
		if op.Selector == "" || seen[op.Selector] {
			continue
		}
		seen[op.Selector] = true
		added++
	}
	return added
}
