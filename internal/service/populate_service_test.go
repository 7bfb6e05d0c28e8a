package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"formpilot/internal/config"
	"formpilot/internal/domain"
	"formpilot/internal/port"
	"formpilot/internal/service"
	"formpilot/mocks"
)

const formHTML = `<form><input type="text" id="family-name"><input type="text" id="city"></form>`

// populateFixture wires a populate service over mocks for every port.
type populateFixture struct {
	store     *mocks.MockRecordStore
	browser   *mocks.MockBrowserProvider
	page      *mocks.MockPageSession
	mapper    *mocks.MockFieldMapper
	artifacts *mocks.MockArtifactStore
	notifier  *mocks.MockRunNotifier
	svc       service.PopulateService
}

func newPopulateFixture() *populateFixture {
	f := &populateFixture{
		store:     new(mocks.MockRecordStore),
		browser:   new(mocks.MockBrowserProvider),
		page:      new(mocks.MockPageSession),
		mapper:    new(mocks.MockFieldMapper),
		artifacts: new(mocks.MockArtifactStore),
		notifier:  new(mocks.MockRunNotifier),
	}
	cfg := &config.Config{
		Matcher: config.MatcherConfig{Inspector: "substring"},
		Browser: config.BrowserConfig{OperationTimeout: time.Second},
		Form:    config.FormConfig{DefaultURL: "https://forms.example/apply"},
	}
	f.svc = service.NewPopulateService(f.store, f.browser, f.mapper, f.artifacts, f.notifier, cfg)
	return f
}

// primePage sets up the common happy-path session behavior.
func (f *populateFixture) primePage(html string) {
	f.browser.On("NewSession", mock.Anything).Return(f.page, nil)
	f.page.On("SessionID").Return("sess-1")
	f.page.On("ViewerURL").Return("https://viewer.example/sess-1")
	f.page.On("Navigate", mock.Anything, mock.Anything).Return(nil)
	f.page.On("Content", mock.Anything).Return(html, nil)
	f.page.On("Close", mock.Anything).Return(nil)
}

// primeArtifacts accepts every artifact write and returns a location derived
// from the artifact name.
func (f *populateFixture) primeArtifacts() {
	for _, name := range []string{"form.html", "mapper-response.json", "form-filled.png"} {
		name := name
		f.artifacts.On("Put", mock.Anything, mock.MatchedBy(func(in port.PutArtifactInput) bool {
			return in.Name == name
		})).Return(&port.PutArtifactOutput{Location: "/artifacts/run/" + name}, nil)
	}
}

func inlineRequest() *domain.PopulateRequest {
	return &domain.PopulateRequest{
		Record: &domain.CaseRecord{
			AttorneyFamilyName: strPtr("Nguyen"),
			ClientCity:         strPtr("Fresno"),
		},
	}
}

func TestPopulateService_Populate_EndToEnd(t *testing.T) {
	f := newPopulateFixture()
	f.primePage(formHTML)
	f.primeArtifacts()

	// The pattern table places attorney_family_name; client_city has no
	// matching id in the markup and goes to the model tier.
	f.mapper.On("MapFields", mock.Anything, mock.MatchedBy(func(in port.MapInput) bool {
		return in.Markup == formHTML && len(in.Fields) == 1 && in.Fields[0].Name == "client_city"
	})).Return(&port.MapOutput{
		Operations: []domain.FillOperation{
			{Action: domain.ActionFill, Selector: "#city", Value: strPtr("Fresno"), Field: "client_city"},
		},
		ModelUsed: "test-model",
		RawJSON:   []byte(`[{"selector": "#city", "action": "fill", "value": "Fresno"}]`),
	}, nil)

	f.page.On("Count", mock.Anything, "#family-name").Return(1, nil)
	f.page.On("Count", mock.Anything, "#city").Return(1, nil)
	f.page.On("Fill", mock.Anything, "#family-name", "Nguyen").Return(nil)
	f.page.On("Fill", mock.Anything, "#city", "Fresno").Return(nil)
	f.page.On("Screenshot", mock.Anything).Return([]byte("png bytes"), nil)
	f.notifier.On("SendRunSummary", mock.Anything, mock.Anything).Return(nil)

	artifact, err := f.svc.Populate(context.Background(), inlineRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, artifact.RunID)
	assert.Equal(t, "sess-1", artifact.SessionID)
	assert.Equal(t, "https://viewer.example/sess-1", artifact.ViewerURL)
	assert.Equal(t, "https://forms.example/apply", artifact.FormURL)
	assert.Equal(t, domain.ExtractionDegraded, artifact.ExtractionStatus)
	assert.Equal(t, 2, artifact.AttemptedCount)
	assert.Equal(t, 2, artifact.FilledCount)
	assert.Equal(t, 1, artifact.DeterministicMatched)
	assert.Equal(t, 1, artifact.ModelMappedAdditional)
	assert.False(t, artifact.EligibilityCheckIssued)
	assert.Equal(t, "/artifacts/run/form.html", artifact.MarkupLocation)
	assert.Equal(t, "/artifacts/run/mapper-response.json", artifact.MapperOutputLocation)
	assert.Equal(t, "/artifacts/run/form-filled.png", artifact.ScreenshotLocation)
	assert.Len(t, artifact.Results, 2)

	f.page.AssertCalled(t, "Navigate", mock.Anything, "https://forms.example/apply")
	f.page.AssertCalled(t, "Close", mock.Anything)
	f.notifier.AssertExpectations(t)
	f.mapper.AssertExpectations(t)
}

func TestPopulateService_Populate_TokenResolvesStoredRecord(t *testing.T) {
	f := newPopulateFixture()
	f.primePage(formHTML)
	f.primeArtifacts()

	f.store.On("Get", mock.Anything, "tok-1").Return(&domain.StoredRecord{
		Token:  "tok-1",
		Record: &domain.CaseRecord{AttorneyFamilyName: strPtr("Nguyen")},
		Status: domain.ExtractionDegraded,
	}, nil)

	f.page.On("Count", mock.Anything, "#family-name").Return(1, nil)
	f.page.On("Fill", mock.Anything, "#family-name", "Nguyen").Return(nil)
	f.page.On("Screenshot", mock.Anything).Return([]byte("png"), nil)
	f.notifier.On("SendRunSummary", mock.Anything, mock.Anything).Return(nil)

	artifact, err := f.svc.Populate(context.Background(), &domain.PopulateRequest{Token: "tok-1"})

	require.NoError(t, err)
	assert.Equal(t, domain.ExtractionDegraded, artifact.ExtractionStatus)
	assert.Equal(t, 1, artifact.FilledCount)
	f.store.AssertExpectations(t)
	f.mapper.AssertNotCalled(t, "MapFields", mock.Anything, mock.Anything)
}

func TestPopulateService_Populate_TokenNotFound(t *testing.T) {
	f := newPopulateFixture()
	f.store.On("Get", mock.Anything, "gone").Return(nil, domain.ErrRecordNotFound)

	_, err := f.svc.Populate(context.Background(), &domain.PopulateRequest{Token: "gone"})

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	f.browser.AssertNotCalled(t, "NewSession", mock.Anything)
}

func TestPopulateService_Populate_NoRecord(t *testing.T) {
	f := newPopulateFixture()

	_, err := f.svc.Populate(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoRecord)

	_, err = f.svc.Populate(context.Background(), &domain.PopulateRequest{})
	assert.ErrorIs(t, err, domain.ErrNoRecord)
}

func TestPopulateService_Populate_SessionCreateFails(t *testing.T) {
	f := newPopulateFixture()
	f.browser.On("NewSession", mock.Anything).Return(nil, domain.ErrSessionCreate)

	_, err := f.svc.Populate(context.Background(), inlineRequest())

	assert.ErrorIs(t, err, domain.ErrSessionCreate)
}

func TestPopulateService_Populate_NavigateFails(t *testing.T) {
	f := newPopulateFixture()
	f.browser.On("NewSession", mock.Anything).Return(f.page, nil)
	f.page.On("SessionID").Return("sess-1")
	f.page.On("ViewerURL").Return("")
	f.page.On("Navigate", mock.Anything, mock.Anything).Return(domain.ErrNavigation)
	f.page.On("Close", mock.Anything).Return(nil)

	_, err := f.svc.Populate(context.Background(), inlineRequest())

	assert.ErrorIs(t, err, domain.ErrNavigation)
	f.page.AssertCalled(t, "Close", mock.Anything)
}

func TestPopulateService_Populate_MarkupUnavailable(t *testing.T) {
	f := newPopulateFixture()
	f.browser.On("NewSession", mock.Anything).Return(f.page, nil)
	f.page.On("SessionID").Return("sess-1")
	f.page.On("ViewerURL").Return("")
	f.page.On("Navigate", mock.Anything, mock.Anything).Return(nil)
	f.page.On("Content", mock.Anything).Return("", errors.New("target crashed"))
	f.page.On("Close", mock.Anything).Return(nil)

	_, err := f.svc.Populate(context.Background(), inlineRequest())

	assert.ErrorIs(t, err, domain.ErrMarkupUnavailable)
}

func TestPopulateService_Populate_MapperFailureDegrades(t *testing.T) {
	f := newPopulateFixture()
	f.primePage(formHTML)
	f.primeArtifacts()

	f.mapper.On("MapFields", mock.Anything, mock.Anything).Return(nil, errors.New("all mapper tiers failed"))
	f.page.On("Count", mock.Anything, "#family-name").Return(1, nil)
	f.page.On("Fill", mock.Anything, "#family-name", "Nguyen").Return(nil)
	f.page.On("Screenshot", mock.Anything).Return([]byte("png"), nil)
	f.notifier.On("SendRunSummary", mock.Anything, mock.Anything).Return(nil)

	artifact, err := f.svc.Populate(context.Background(), inlineRequest())

	require.NoError(t, err, "mapper failure must not fail the run")
	assert.Equal(t, 1, artifact.AttemptedCount)
	assert.Equal(t, 1, artifact.DeterministicMatched)
	assert.Equal(t, 0, artifact.ModelMappedAdditional)
	assert.Empty(t, artifact.MapperOutputLocation)
}

func TestPopulateService_Populate_ScreenshotFailureNonFatal(t *testing.T) {
	f := newPopulateFixture()
	f.primePage(formHTML)
	f.primeArtifacts()

	f.mapper.On("MapFields", mock.Anything, mock.Anything).Return(&port.MapOutput{}, nil)
	f.page.On("Count", mock.Anything, "#family-name").Return(1, nil)
	f.page.On("Fill", mock.Anything, "#family-name", "Nguyen").Return(nil)
	f.page.On("Screenshot", mock.Anything).Return(nil, errors.New("capture failed"))
	f.notifier.On("SendRunSummary", mock.Anything, mock.Anything).Return(nil)

	artifact, err := f.svc.Populate(context.Background(), inlineRequest())

	require.NoError(t, err)
	assert.Empty(t, artifact.ScreenshotLocation)
	f.notifier.AssertExpectations(t)
}

func TestPopulateService_Populate_NotifierFailureNonFatal(t *testing.T) {
	f := newPopulateFixture()
	f.primePage(formHTML)
	f.primeArtifacts()

	f.mapper.On("MapFields", mock.Anything, mock.Anything).Return(&port.MapOutput{}, nil)
	f.page.On("Count", mock.Anything, "#family-name").Return(1, nil)
	f.page.On("Fill", mock.Anything, "#family-name", "Nguyen").Return(nil)
	f.page.On("Screenshot", mock.Anything).Return([]byte("png"), nil)
	f.notifier.On("SendRunSummary", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	_, err := f.svc.Populate(context.Background(), inlineRequest())

	assert.NoError(t, err)
}

func TestPopulateService_Populate_EligibilityCheck(t *testing.T) {
	f := newPopulateFixture()
	html := `<form><input type="text" id="family-name"><input type="checkbox" id="attorney-eligible"></form>`
	f.primePage(html)
	f.primeArtifacts()

	f.mapper.On("MapFields", mock.Anything, mock.Anything).Return(&port.MapOutput{}, nil)
	f.page.On("Count", mock.Anything, "#family-name").Return(1, nil)
	f.page.On("Count", mock.Anything, "#attorney-eligible").Return(1, nil)
	f.page.On("Fill", mock.Anything, "#family-name", "Nguyen").Return(nil)
	f.page.On("Check", mock.Anything, "#attorney-eligible").Return(nil)
	f.page.On("Screenshot", mock.Anything).Return([]byte("png"), nil)
	f.notifier.On("SendRunSummary", mock.Anything, mock.Anything).Return(nil)

	artifact, err := f.svc.Populate(context.Background(), inlineRequest())

	require.NoError(t, err)
	assert.True(t, artifact.EligibilityCheckIssued)
	assert.Equal(t, 2, artifact.AttemptedCount)
	f.page.AssertCalled(t, "Check", mock.Anything, "#attorney-eligible")
}

func TestPopulateService_Populate_ExplicitFormURL(t *testing.T) {
	f := newPopulateFixture()
	f.primePage(formHTML)
	f.primeArtifacts()

	f.mapper.On("MapFields", mock.Anything, mock.Anything).Return(&port.MapOutput{}, nil)
	f.page.On("Count", mock.Anything, "#family-name").Return(1, nil)
	f.page.On("Fill", mock.Anything, "#family-name", "Nguyen").Return(nil)
	f.page.On("Screenshot", mock.Anything).Return([]byte("png"), nil)
	f.notifier.On("SendRunSummary", mock.Anything, mock.Anything).Return(nil)

	req := inlineRequest()
	req.FormURL = "https://other.example/form"
	artifact, err := f.svc.Populate(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "https://other.example/form", artifact.FormURL)
	f.page.AssertCalled(t, "Navigate", mock.Anything, "https://other.example/form")
}

func TestPopulateService_Populate_WithoutArtifactsOrNotifier(t *testing.T) {
	f := newPopulateFixture()
	cfg := &config.Config{
		Matcher: config.MatcherConfig{Inspector: "substring"},
		Browser: config.BrowserConfig{OperationTimeout: time.Second},
		Form:    config.FormConfig{DefaultURL: "https://forms.example/apply"},
	}
	svc := service.NewPopulateService(f.store, f.browser, f.mapper, nil, nil, cfg)

	f.primePage(formHTML)
	f.mapper.On("MapFields", mock.Anything, mock.Anything).Return(&port.MapOutput{}, nil)
	f.page.On("Count", mock.Anything, "#family-name").Return(1, nil)
	f.page.On("Fill", mock.Anything, "#family-name", "Nguyen").Return(nil)
	f.page.On("Screenshot", mock.Anything).Return([]byte("png"), nil)

	artifact, err := svc.Populate(context.Background(), inlineRequest())

	require.NoError(t, err)
	assert.Empty(t, artifact.MarkupLocation)
	assert.Empty(t, artifact.ScreenshotLocation)
}
