package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridhook-systems/gridhook/internal/logging"
	"github.com/gridhook-systems/gridhook/internal/models"
)

// mockDispatcher records dispatches and returns a configured error.
type mockDispatcher struct {
	calls    int
	lastInfo models.BlobInfo
	lastEnv  models.Envelope
	err      error
}

func (m *mockDispatcher) Dispatch(ctx context.Context, info models.BlobInfo, env models.Envelope) error {
	m.calls++
	m.lastInfo = info
	m.lastEnv = env
	return m.err
}

func newTestService(d *mockDispatcher) *EventService {
	return NewEventService(d, logging.New(slog.LevelError, "json"))
}

func TestHandleEnvelope_BlobCreated(t *testing.T) {
	dispatcher := &mockDispatcher{}
	svc := newTestService(dispatcher)

	env := models.Envelope{
		ID:   "evt-1",
		Type: models.TypeBlobCreated,
		Data: map[string]any{
			"url":         "https://acct.blob.core.windows.net/mycontainer/myfile.png",
			"contentType": "image/png",
		},
	}

	err := svc.HandleEnvelope(context.Background(), env)
	require.NoError(t, err)

	assert.Equal(t, 1, dispatcher.calls, "pipeline runs exactly once")
	assert.Equal(t, "myfile.png", dispatcher.lastInfo.BlobName)
	assert.Equal(t, "mycontainer", dispatcher.lastInfo.ContainerName)
	assert.Equal(t, "image/png", dispatcher.lastInfo.ContentType)
	assert.Equal(t, env.ID, dispatcher.lastEnv.ID)
}

func TestHandleEnvelope_UnknownTypeAcknowledged(t *testing.T) {
	dispatcher := &mockDispatcher{}
	svc := newTestService(dispatcher)

	env := models.Envelope{
		ID:   "evt-2",
		Type: "Microsoft.Storage.BlobDeleted",
		Data: map[string]any{"url": "https://acct/c/f"},
	}

	err := svc.HandleEnvelope(context.Background(), env)
	require.NoError(t, err, "unrecognized types are acknowledged, not errors")
	assert.Equal(t, 0, dispatcher.calls, "pipeline must not run")
}

func TestHandleEnvelope_MissingDataStillDispatches(t *testing.T) {
	dispatcher := &mockDispatcher{}
	svc := newTestService(dispatcher)

	env := models.Envelope{Type: models.TypeBlobCreated}
	err := svc.HandleEnvelope(context.Background(), env)
	require.NoError(t, err)

	assert.Equal(t, 1, dispatcher.calls)
	assert.Equal(t, models.BlobInfo{}, dispatcher.lastInfo, "empty payload dispatches a zero struct")
}

func TestHandleEnvelope_DispatchErrorPropagates(t *testing.T) {
	dispatcher := &mockDispatcher{err: errors.New("processor exploded")}
	svc := newTestService(dispatcher)

	err := svc.HandleEnvelope(context.Background(), models.Envelope{Type: models.TypeBlobCreated})
	assert.Error(t, err)
}
