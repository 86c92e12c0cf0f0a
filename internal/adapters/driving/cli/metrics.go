package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// metricsPrefix selects the pipeline's own metric families.
const metricsPrefix = "reclaim_"

var gatherer prometheus.Gatherer = prometheus.DefaultGatherer

// writeMetrics prints the pipeline metrics in the Prometheus text format.
func writeMetrics(w io.Writer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range pipelineFamilies(families) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func pipelineFamilies(families []*dto.MetricFamily) []*dto.MetricFamily {
	var out []*dto.MetricFamily
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), metricsPrefix) {
			out = append(out, mf)
		}
	}
	return out
}
