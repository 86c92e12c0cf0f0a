package cli

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reclaim/internal/logger"
)

var cliTestCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reclaim_cli_test_total",
	Help: "Counter exercised by the metrics flag test",
})

func withBootstrap(t *testing.T, fn BootstrapFunc) {
	t.Helper()
	SetBootstrap(fn)
	t.Cleanup(func() { SetBootstrap(nil) })
}

func TestRootCmd_BootstrapsServices(t *testing.T) {
	setupServices(t)
	Configure(nil)

	r := &mockReclaimer{report: sampleReport()}
	var got Options
	closed := false
	withBootstrap(t, func(opts Options) (*Services, func(), error) {
		got = opts
		return &Services{Reclaimer: r}, func() { closed = true }, nil
	})

	_, err := execute(t, "", "plan", "10", "--config-dir", "/tmp/cfg", "--data-dir", "/tmp/data")

	require.NoError(t, err)
	assert.Equal(t, Options{ConfigDir: "/tmp/cfg", DataDir: "/tmp/data"}, got)
	assert.Equal(t, []int64{10}, r.planned)
	assert.True(t, closed)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	setupServices(t)
	withBootstrap(t, func(Options) (*Services, func(), error) {
		return nil, nil, errors.New("no database")
	})

	_, err := execute(t, "", "plan", "10")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialising: no database")
}

func TestRootCmd_VersionSkipsBootstrap(t *testing.T) {
	setupServices(t)
	withBootstrap(t, func(Options) (*Services, func(), error) {
		return nil, nil, errors.New("must not be called")
	})

	_, err := execute(t, "", "version")

	assert.NoError(t, err)
}

func TestRootCmd_Verbose(t *testing.T) {
	setupServices(t)

	_, err := execute(t, "", "version", "--verbose")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestRootCmd_Metrics(t *testing.T) {
	setupServices(t)
	cliTestCounter.Inc()

	out, err := execute(t, "", "version", "--metrics")

	require.NoError(t, err)
	assert.Contains(t, out, "# TYPE reclaim_cli_test_total counter")
	assert.NotContains(t, out, "go_goroutines")
}

func TestPipelineFamilies(t *testing.T) {
	names := []string{"reclaim_events_total", "go_threads", "reclaim_outcomes_total"}
	families := make([]*dto.MetricFamily, len(names))
	for i := range names {
		families[i] = &dto.MetricFamily{Name: &names[i]}
	}

	got := pipelineFamilies(families)

	require.Len(t, got, 2)
	assert.Equal(t, "reclaim_events_total", got[0].GetName())
	assert.Equal(t, "reclaim_outcomes_total", got[1].GetName())
}
