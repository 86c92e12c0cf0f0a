package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/custodia-labs/reclaim/internal/core/domain"
	"github.com/custodia-labs/reclaim/internal/core/ports/driving"
	"github.com/custodia-labs/reclaim/internal/logger"
)

// mockReclaimer implements driving.Reclaimer for testing.
type mockReclaimer struct {
	report *domain.Report
	usage  *domain.Usage
	err    error

	deleted   []int64
	planned   []int64
	excluding int64
}

func (m *mockReclaimer) Reclaim(_ context.Context, recordID int64) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockReclaimer) Plan(_ context.Context, recordID int64) (*domain.Report, error) {
	m.planned = append(m.planned, recordID)
	return m.report, m.err
}

func (m *mockReclaimer) Delete(_ context.Context, recordID int64) (*domain.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.deleted = append(m.deleted, recordID)
	return m.report, nil
}

func (m *mockReclaimer) Usage(_ context.Context, _ int64, excluding int64) (*domain.Usage, error) {
	m.excluding = excluding
	if m.usage == nil {
		return &domain.Usage{}, m.err
	}
	return m.usage, m.err
}

// mockSettings implements driving.SettingsService for testing.
type mockSettings struct {
	settings domain.ReclaimSettings
	saved    *domain.ReclaimSettings
	set      map[string]string
	err      error
}

func newMockSettings() *mockSettings {
	s := domain.DefaultReclaimSettings()
	s.UploadBaseURL = "https://example.com/wp-content/uploads"
	s.ActiveIntegrations = []string{"elementor"}
	return &mockSettings{settings: s, set: make(map[string]string)}
}

func (m *mockSettings) Get() (*domain.ReclaimSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(settings *domain.ReclaimSettings) error {
	if m.err != nil {
		return m.err
	}
	s := *settings
	m.saved = &s
	return nil
}

func (m *mockSettings) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string {
	return []string{"integrations.active", "uploads.base_url"}
}

func (m *mockSettings) GetDefaults() domain.ReclaimSettings {
	return domain.DefaultReclaimSettings()
}

// mockHistory implements driving.EventHistory for testing.
type mockHistory struct {
	reports []domain.Report
	limit   int
	err     error
}

func (m *mockHistory) Recent(_ context.Context, limit int) ([]domain.Report, error) {
	m.limit = limit
	return m.reports, m.err
}

func (m *mockHistory) Event(_ context.Context, eventID string) (*domain.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.reports {
		if m.reports[i].EventID == eventID {
			return &m.reports[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockImporter implements driving.Importer for testing.
type mockImporter struct {
	body string
	err  error
}

func (m *mockImporter) Import(_ context.Context, r io.Reader) (*driving.ImportSummary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.body = string(data)
	if m.err != nil {
		return nil, m.err
	}
	return &driving.ImportSummary{Records: 2, Media: 1}, nil
}

func sampleReport() *domain.Report {
	return &domain.Report{
		EventID:  "ev-1",
		RecordID: 10,
		Outcomes: []domain.Outcome{
			{MediaID: 55, Encodings: []domain.Encoding{domain.EncodingStandard}, Action: domain.ActionDelete},
			{MediaID: 56, Encodings: []domain.Encoding{domain.EncodingStandard}, Action: domain.ActionReparent, NewParentID: 11},
			{
				MediaID:   40,
				Encodings: []domain.Encoding{domain.EncodingBrizy},
				Action:    domain.ActionSkip,
				Reason:    domain.SkipStillInUse,
				Blockers:  []int64{31, 32},
			},
		},
		Failures: []domain.EncodingFailure{{Encoding: domain.EncodingElementor, Err: domain.ErrStoreQuery}},
	}
}

// setupServices installs mocks and resets global flag state after the test.
func setupServices(t *testing.T) (*mockReclaimer, *mockSettings, *mockHistory, *mockImporter) {
	t.Helper()
	r := &mockReclaimer{report: sampleReport()}
	s := newMockSettings()
	h := &mockHistory{}
	i := &mockImporter{}
	Configure(&Services{Reclaimer: r, Settings: s, History: h, Importer: i})

	oldInteractive := isInteractive
	t.Cleanup(func() {
		Configure(nil)
		isInteractive = oldInteractive
		deleteYes = false
		deleteRate = 0
		importWatch = false
		usageExcluding = 0
		historyLimit = 20
		printMetrics = false
		verbose = false
		logger.SetVerbose(false)
		configDir = ""
		dataDir = ""
	})
	return r, s, h, i
}

// execute runs the root command with args and returns the combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
