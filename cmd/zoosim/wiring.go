package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"zoocore/internal/config"
	"zoocore/internal/core"
	"zoocore/internal/report"
	"zoocore/internal/scenario"
	"zoocore/plugins/diet"
)

type wired struct {
	svc      *core.Service
	narrator *report.Narrator
	expvar   *core.ExpvarMetricsRecorder
	prom     *core.PrometheusMetricsRecorder
}

func (a *app) wire(out io.Writer, trace io.Writer) (*wired, error) {
	cat, err := report.LoadCatalog()
	if err != nil {
		return nil, err
	}
	w := &wired{narrator: report.NewNarrator(cat, a.cfg.Locale, report.NewWriterSink(out))}

	opts := []core.Option{
		core.WithLogger(core.NewZapLogger(a.logger)),
		core.WithCapacityModel(a.cfg.CapacityModel),
		core.WithServiceReporter(w.narrator),
	}
	switch a.cfg.Metrics {
	case config.MetricsExpvar:
		w.expvar = core.NewExpvarMetricsRecorder("")
		opts = append(opts, core.WithMetricsRecorder(w.expvar))
	case config.MetricsPrometheus:
		w.prom = core.NewPrometheusMetricsRecorder("zoo")
		opts = append(opts, core.WithMetricsRecorder(w.prom))
	}
	if trace != nil {
		opts = append(opts, core.WithTracer(core.NewJSONTracer(trace)))
	}

	w.svc = core.NewInMemoryService(nil, opts...)
	if _, err := w.svc.InstallPlugin(diet.New()); err != nil {
		return nil, err
	}
	return w, nil
}

func (a *app) loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		path = a.cfg.Scenario
	}
	if path == "" {
		return scenario.Default(), nil
	}
	return scenario.LoadFile(path)
}

// dumpMetrics writes the configured recorder's current values.
func (w *wired) dumpMetrics(out io.Writer) error {
	switch {
	case w.expvar != nil:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(w.expvar.Snapshot())
	case w.prom != nil:
		families, err := w.prom.Registry().Gather()
		if err != nil {
			return err
		}
		var lines []string
		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				var labels []string
				for _, lp := range m.GetLabel() {
					labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
				}
				var value float64
				switch {
				case m.GetCounter() != nil:
					value = m.GetCounter().GetValue()
				case m.GetGauge() != nil:
					value = m.GetGauge().GetValue()
				case m.GetHistogram() != nil:
					value = float64(m.GetHistogram().GetSampleCount())
				}
				lines = append(lines, fmt.Sprintf("%s%v %g", mf.GetName(), labels, value))
			}
		}
		sort.Strings(lines)
		for _, line := range lines {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}
	return nil
}
