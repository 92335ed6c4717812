package dispatch

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridhook-systems/gridhook/internal/logging"
	"github.com/gridhook-systems/gridhook/internal/models"
)

// countingProcessor wraps a real processor and records invocations.
type countingProcessor struct {
	Processor
	calls int
}

func (c *countingProcessor) Process(ctx context.Context, info models.BlobInfo, env models.Envelope) error {
	c.calls++
	return c.Processor.Process(ctx, info, env)
}

func newCountingChain(t *testing.T) (map[string]*countingProcessor, *Router) {
	t.Helper()

	logger := logging.New(slog.LevelError, "json")
	counters := map[string]*countingProcessor{}
	var chain []Processor
	for _, p := range DefaultProcessors(logger) {
		c := &countingProcessor{Processor: p}
		counters[p.Name()] = c
		chain = append(chain, c)
	}
	return counters, NewRouter(chain...)
}

func TestDispatch_ImageContentType(t *testing.T) {
	counters, router := newCountingChain(t)

	err := router.Dispatch(context.Background(), models.BlobInfo{ContentType: "image/png"}, models.Envelope{})
	require.NoError(t, err)

	assert.Equal(t, 1, counters["image"].calls, "image processor called exactly once")
	assert.Equal(t, 0, counters["text"].calls)
	assert.Equal(t, 0, counters["json"].calls)
	assert.Equal(t, 0, counters["generic"].calls)
}

func TestDispatch_ContentTypeRouting(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{contentType: "image/jpeg", want: "image"},
		{contentType: "text/plain", want: "text"},
		{contentType: "text/csv", want: "text"},
		{contentType: "application/json", want: "json"},
		{contentType: "application/json; charset=utf-8", want: "generic"},
		{contentType: "application/octet-stream", want: "generic"},
		{contentType: "", want: "generic"},
		{contentType: "IMAGE/PNG", want: "generic"},
		{contentType: "image", want: "generic"},
	}

	for _, tt := range tests {
		t.Run("contentType="+tt.contentType, func(t *testing.T) {
			counters, router := newCountingChain(t)

			err := router.Dispatch(context.Background(), models.BlobInfo{ContentType: tt.contentType}, models.Envelope{})
			require.NoError(t, err)

			for name, c := range counters {
				wantCalls := 0
				if name == tt.want {
					wantCalls = 1
				}
				assert.Equal(t, wantCalls, c.calls, "processor %s", name)
			}
		})
	}
}

func TestDispatch_NoProcessors(t *testing.T) {
	router := NewRouter()
	err := router.Dispatch(context.Background(), models.BlobInfo{ContentType: "image/png"}, models.Envelope{})
	assert.NoError(t, err)
}

func TestStubsNeverFail(t *testing.T) {
	logger := logging.New(slog.LevelError, "json")

	inputs := []models.BlobInfo{
		{},
		{ContentType: "image/png", BlobName: "a.png", ContainerName: "c", ContentLength: 10},
		{ContentType: "text/plain"},
		{ContentType: "application/json", URL: "u"},
	}

	for _, p := range DefaultProcessors(logger) {
		for _, info := range inputs {
			assert.NoError(t, p.Process(context.Background(), info, models.Envelope{}), "processor %s", p.Name())
		}
	}
}
