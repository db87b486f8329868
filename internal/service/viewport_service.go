package service

import (
	"context"
	"sync"

	"noteboard/internal/canvas"
)

// ─────────────────────────────────────────────────────────────
// Viewport Service: pan and zoom of the session canvas
// ─────────────────────────────────────────────────────────────

// ViewportService owns the single session viewport. Every change goes
// through a pure canvas.Viewport transform and is emitted to the frontend.
type ViewportService struct {
	mu      sync.RWMutex
	vp      canvas.Viewport
	limits  canvas.ZoomLimits
	emitter EventEmitter
}

// NewViewportService creates a ViewportService with an untransformed viewport.
func NewViewportService(limits canvas.ZoomLimits, width, height float64, emitter EventEmitter) *ViewportService {
	return &ViewportService{
		vp:      canvas.NewViewport(width, height),
		limits:  limits,
		emitter: emitter,
	}
}

// Get returns the current viewport.
func (s *ViewportService) Get() canvas.Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vp
}

// Limits returns the zoom bounds in effect.
func (s *ViewportService) Limits() canvas.ZoomLimits {
	return s.limits
}

// Pan shifts the viewport by a screen-space drag delta.
func (s *ViewportService) Pan(ctx context.Context, dx, dy float64) canvas.Viewport {
	return s.apply(ctx, func(v canvas.Viewport) canvas.Viewport {
		return v.Pan(dx, dy)
	})
}

// Wheel zooms when a modifier (ctrl or cmd) is held; plain wheel events are ignored.
func (s *ViewportService) Wheel(ctx context.Context, deltaY float64, modifier bool) canvas.Viewport {
	return s.apply(ctx, func(v canvas.Viewport) canvas.Viewport {
		return v.Wheel(deltaY, modifier, s.limits)
	})
}

// SetScale jumps to an absolute scale, clamped to the zoom limits.
func (s *ViewportService) SetScale(ctx context.Context, scale float64) canvas.Viewport {
	return s.apply(ctx, func(v canvas.Viewport) canvas.Viewport {
		v.Scale = s.limits.Clamp(scale)
		return v
	})
}

// Resize records the visible canvas size reported by the frontend.
func (s *ViewportService) Resize(ctx context.Context, width, height float64) canvas.Viewport {
	return s.apply(ctx, func(v canvas.Viewport) canvas.Viewport {
		return v.Resize(width, height)
	})
}

// Reset returns to pan (0,0) and scale 1.
func (s *ViewportService) Reset(ctx context.Context) canvas.Viewport {
	return s.apply(ctx, canvas.Viewport.Reset)
}

// Center returns the world position that centers a box of the given half
// extents in the current viewport.
func (s *ViewportService) Center(halfWidth, halfHeight float64) canvas.Point {
	return s.Get().Center(halfWidth, halfHeight)
}

func (s *ViewportService) apply(ctx context.Context, fn func(canvas.Viewport) canvas.Viewport) canvas.Viewport {
	s.mu.Lock()
	prev := s.vp
	next := fn(prev)
	s.vp = next
	s.mu.Unlock()

	if next != prev {
		s.emitter.Emit(ctx, EventViewportChanged, next)
	}
	return next
}
