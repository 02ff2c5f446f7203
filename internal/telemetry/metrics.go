package telemetry

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// ClientMetricsPrefix — префикс метрик HTTP-клиента LCCS.
const ClientMetricsPrefix = "lccs_client_"

// WriteMetrics выводит метрики g в текстовом формате Prometheus.
// Пустой prefix — все семейства.
func WriteMetrics(w io.Writer, g prometheus.Gatherer, prefix string) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if !hasPrefix(mf, prefix) {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func hasPrefix(mf *dto.MetricFamily, prefix string) bool {
	return strings.HasPrefix(mf.GetName(), prefix)
}
