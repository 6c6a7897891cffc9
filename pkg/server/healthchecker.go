package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// HealthCheckFunc adapts a plain probe to a HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) Healthy(ctx context.Context) bool {
	return f(ctx) == nil
}
