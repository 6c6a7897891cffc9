package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckers(t *testing.T) {
	ctx := context.Background()

	assert.True(t, NewOkHealthChecker().Healthy(ctx))
	assert.True(t, HealthCheckFunc(func(context.Context) error { return nil }).Healthy(ctx))
	assert.False(t, HealthCheckFunc(func(context.Context) error { return errors.New("results file missing") }).Healthy(ctx))
}
