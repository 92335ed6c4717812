// Package blob extracts storage metadata from blob-created event payloads.
package blob

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gridhook-systems/gridhook/internal/models"
)

// Extract pulls the storage fields out of a blob-created event's data
// payload. Absent fields default to empty strings or zero; extraction is
// best-effort and never fails. A nil or empty payload yields the zero
// BlobInfo.
func Extract(data map[string]any) models.BlobInfo {
	if len(data) == 0 {
		return models.BlobInfo{}
	}

	info := models.BlobInfo{
		URL:             stringField(data, "url"),
		API:             stringField(data, "api"),
		ClientRequestID: stringField(data, "clientRequestId"),
		RequestID:       stringField(data, "requestId"),
		ETag:            stringField(data, "eTag"),
		ContentType:     stringField(data, "contentType"),
		BlobType:        stringField(data, "blobType"),
		Sequencer:       stringField(data, "sequencer"),
		ContentLength:   contentLength(data["contentLength"]),
	}

	// Blob and container names are the last two path segments of the URL.
	if info.URL != "" {
		segments := strings.Split(info.URL, "/")
		if len(segments) >= 2 {
			info.BlobName = segments[len(segments)-1]
			info.ContainerName = segments[len(segments)-2]
		}
	}

	return info
}

// contentLength coerces the contentLength value to an int64. JSON numbers
// decode as float64; some emitters send the length as a quoted string.
// Anything non-numeric defaults to 0 with a logged warning rather than
// failing the delivery.
func contentLength(v any) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i
		}
	}
	slog.Warn("non-numeric contentLength in event payload, defaulting to 0",
		slog.Any("value", v),
	)
	return 0
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
