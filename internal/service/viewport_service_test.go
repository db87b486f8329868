package service_test

import (
	"context"
	"testing"

	"noteboard/internal/canvas"
	"noteboard/internal/service"
)

func TestViewportService_PanEmits(t *testing.T) {
	m := &service.MockEmitter{}
	s := service.NewViewportService(canvas.DefaultZoomLimits, 800, 600, m)

	v := s.Pan(context.Background(), 15, -4)
	if v.PanX != 15 || v.PanY != -4 {
		t.Errorf("unexpected pan %+v", v)
	}
	events := m.Named(service.EventViewportChanged)
	if len(events) != 1 {
		t.Fatalf("expected 1 viewport event, got %d", len(events))
	}
	if events[0].Data.(canvas.Viewport) != v {
		t.Errorf("event payload differs from state")
	}
}

func TestViewportService_PlainWheelIgnored(t *testing.T) {
	m := &service.MockEmitter{}
	s := service.NewViewportService(canvas.DefaultZoomLimits, 800, 600, m)

	v := s.Wheel(context.Background(), -300, false)
	if v.Scale != 1 {
		t.Errorf("expected scale 1, got %v", v.Scale)
	}
	if len(m.Events) != 0 {
		t.Errorf("ignored wheel should not emit, got %d events", len(m.Events))
	}
}

func TestViewportService_ScaleClamped(t *testing.T) {
	s := service.NewViewportService(canvas.DefaultZoomLimits, 800, 600, &service.MockEmitter{})
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		s.Wheel(ctx, -400, true)
	}
	if got := s.Get().Scale; got != 5 {
		t.Errorf("expected max scale 5, got %v", got)
	}
	for i := 0; i < 100; i++ {
		s.Wheel(ctx, 400, true)
	}
	if got := s.Get().Scale; got != 0.1 {
		t.Errorf("expected min scale 0.1, got %v", got)
	}
	if got := s.SetScale(ctx, 42).Scale; got != 5 {
		t.Errorf("SetScale should clamp, got %v", got)
	}
}

func TestViewportService_ResizeAndReset(t *testing.T) {
	s := service.NewViewportService(canvas.DefaultZoomLimits, 800, 600, &service.MockEmitter{})
	ctx := context.Background()

	s.Pan(ctx, 10, 10)
	s.Resize(ctx, 1024, 768)
	if got := s.Center(100, 50); got != (canvas.Point{X: -10 + 512 - 100, Y: -10 + 384 - 50}) {
		t.Errorf("unexpected center %+v", got)
	}
	v := s.Reset(ctx)
	if v != canvas.NewViewport(1024, 768) {
		t.Errorf("unexpected reset viewport %+v", v)
	}
}
