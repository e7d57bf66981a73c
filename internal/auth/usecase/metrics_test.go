package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/virasatlabs/virasat/internal/auth/outbound/ledger"
	"github.com/virasatlabs/virasat/internal/pkg/config"
	"github.com/virasatlabs/virasat/internal/pkg/hash"
	"github.com/virasatlabs/virasat/internal/pkg/sms"
	"github.com/virasatlabs/virasat/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

type meterInstrument struct {
	mp *sdkmetric.MeterProvider
}

func (m *meterInstrument) Tracer(name string) trace.Tracer {
	return tracenoop.NewTracerProvider().Tracer(name)
}

func (m *meterInstrument) Meter(name string) metric.Meter {
	return m.mp.Meter(name)
}

func (m *meterInstrument) Shutdown(ctx context.Context) error {
	return m.mp.Shutdown(ctx)
}

func TestPasscodeCountersReachMeter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	ins := &meterInstrument{mp: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))}

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	t.Cleanup(func() { cfg.Close() })

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	uc := New(Dependency{
		Ledger:     ledger.NewMemory(clk),
		Sender:     &fakeSender{kind: sms.KindTwilio},
		Validator:  v,
		Config:     cfg,
		Bcrypt:     hash.NewBcrypt(4, ""),
		UID:        fakeNumberID{},
		Clock:      clk,
		Instrument: ins,
	})

	ctx := context.Background()
	if _, err := uc.SendOTP(ctx, SendOTPInput{Mobile: "9876543210"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	if got := counterValue(t, rm, "auth.otp.issued"); got != 1 {
		t.Errorf("auth.otp.issued = %d, want 1", got)
	}
	if got := counterValue(t, rm, "auth.otp.approved"); got != 0 {
		t.Errorf("auth.otp.approved = %d, want 0", got)
	}
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s has unexpected data type %T", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}

	t.Fatalf("metric %s was not collected", name)
	return 0
}
