package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracerWithoutExporter(t *testing.T) {
	tp, tracer, err := InitTracer(context.Background(), Options{})
	require.NoError(t, err)
	defer func() { assert.NoError(t, tp.Shutdown(context.Background())) }()

	_, span := tracer.Start(context.Background(), "test-span")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}
