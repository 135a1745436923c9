package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// StatementTotal sums storage_statements_total across every label set the
// gatherer exposes. Missing families count as zero.
func StatementTotal(g prometheus.Gatherer) (float64, error) {
	families, err := g.Gather()
	if err != nil {
		return 0, err
	}
	return sumCounter(families, StatementsTotalName), nil
}

func sumCounter(families []*dto.MetricFamily, name string) float64 {
	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
