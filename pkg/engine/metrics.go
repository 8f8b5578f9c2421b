// pkg/engine/metrics.go
package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-tankgame/pkg/entity"
)

const meterName = "github.com/opd-ai/go-tankgame/pkg/engine"

// worldMetrics are the counters a world records through the global meter
// provider. Without a configured provider they are no-ops.
type worldMetrics struct {
	spawned   metric.Int64Counter
	destroyed metric.Int64Counter
	hits      metric.Int64Counter
	frames    metric.Int64Counter
}

func newWorldMetrics() (*worldMetrics, error) {
	meter := otel.Meter(meterName)
	m := &worldMetrics{}
	var err error

	if m.spawned, err = meter.Int64Counter("tankgame.entities.spawned",
		metric.WithDescription("Entities added to the world"),
		metric.WithUnit("{entity}")); err != nil {
		return nil, err
	}
	if m.destroyed, err = meter.Int64Counter("tankgame.entities.destroyed",
		metric.WithDescription("Entities removed by the destruction sweep"),
		metric.WithUnit("{entity}")); err != nil {
		return nil, err
	}
	if m.hits, err = meter.Int64Counter("tankgame.projectile.hits",
		metric.WithDescription("Projectiles that damaged a vehicle"),
		metric.WithUnit("{hit}")); err != nil {
		return nil, err
	}
	if m.frames, err = meter.Int64Counter("tankgame.frames",
		metric.WithDescription("Simulation steps executed"),
		metric.WithUnit("{frame}")); err != nil {
		return nil, err
	}
	return m, nil
}

func kindAttr(kind entity.Kind) metric.AddOption {
	return metric.WithAttributes(attribute.String("kind", kind.String()))
}

func (m *worldMetrics) recordSpawn(ctx context.Context, kind entity.Kind) {
	if m != nil {
		m.spawned.Add(ctx, 1, kindAttr(kind))
	}
}

func (m *worldMetrics) recordDestroy(ctx context.Context, kind entity.Kind) {
	if m != nil {
		m.destroyed.Add(ctx, 1, kindAttr(kind))
	}
}

func (m *worldMetrics) recordHit(ctx context.Context) {
	if m != nil {
		m.hits.Add(ctx, 1)
	}
}

func (m *worldMetrics) recordFrame(ctx context.Context) {
	if m != nil {
		m.frames.Add(ctx, 1)
	}
}
