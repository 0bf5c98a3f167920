package render

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "uibuilder"

// metrics holds the Prometheus collectors for a renderer. A nil *metrics is
// valid and records nothing.
type metrics struct {
	rendersTotal     *prometheus.CounterVec
	renderDuration   prometheus.Histogram
	viewsRendered    *prometheus.CounterVec
	missingTemplates *prometheus.CounterVec
	elementErrors    *prometheus.CounterVec
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	if registerer == nil {
		return nil, nil
	}

	m := &metrics{
		rendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "renders_total",
			Help:      "Total number of structure renders by outcome",
		}, []string{"outcome"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Structure render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		viewsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "views_rendered_total",
			Help:      "Total number of view templates rendered",
		}, []string{"view"}),
		missingTemplates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "missing_templates_total",
			Help:      "Total number of view lookups that found no template",
		}, []string{"view"}),
		elementErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "element_errors_total",
			Help:      "Total number of element factory failures",
		}, []string{"type"}),
	}

	var err error
	if m.rendersTotal, err = register(registerer, m.rendersTotal); err != nil {
		return nil, err
	}
	if m.renderDuration, err = register(registerer, m.renderDuration); err != nil {
		return nil, err
	}
	if m.viewsRendered, err = register(registerer, m.viewsRendered); err != nil {
		return nil, err
	}
	if m.missingTemplates, err = register(registerer, m.missingTemplates); err != nil {
		return nil, err
	}
	if m.elementErrors, err = register(registerer, m.elementErrors); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds the collector, reusing an identical collector already
// registered by another renderer sharing the registerer.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, err
	}
	return collector, nil
}

func (m *metrics) observeRender(start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.rendersTotal.WithLabelValues(outcome).Inc()
	m.renderDuration.Observe(time.Since(start).Seconds())
}

func (m *metrics) viewRendered(view string) {
	if m == nil {
		return
	}
	m.viewsRendered.WithLabelValues(view).Inc()
}

func (m *metrics) templateMissing(view string) {
	if m == nil {
		return
	}
	m.missingTemplates.WithLabelValues(view).Inc()
}

func (m *metrics) elementFailed(typ string) {
	if m == nil {
		return
	}
	m.elementErrors.WithLabelValues(typ).Inc()
}
