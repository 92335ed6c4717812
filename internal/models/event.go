package models

// Event type emitted by Azure Storage when a new blob is written.
// Only this type goes through the full extraction and dispatch pipeline;
// everything else is acknowledged and dropped.
const TypeBlobCreated = "Microsoft.Storage.BlobCreated"

// DefaultSpecVersion is assumed when an envelope omits specversion.
const DefaultSpecVersion = "1.0"

// Envelope is the CloudEvents v1.0 wrapper as delivered by Event Grid.
// All fields are best-effort: missing or mistyped values default rather
// than fail, so an Envelope is always usable after parsing.
type Envelope struct {
	SpecVersion string         `json:"specversion"`
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Type        string         `json:"type"`
	Subject     string         `json:"subject,omitempty"`
	Time        string         `json:"time,omitempty"`
	Data        map[string]any `json:"data"`
}

// BlobInfo holds the storage-specific payload of a blob-created event.
// BlobName and ContainerName are derived from the URL path; both are empty
// when the URL is absent or has fewer than two path segments.
type BlobInfo struct {
	URL             string `json:"url"`
	API             string `json:"api"`
	ClientRequestID string `json:"clientRequestId"`
	RequestID       string `json:"requestId"`
	ETag            string `json:"eTag"`
	ContentType     string `json:"contentType"`
	ContentLength   int64  `json:"contentLength"`
	BlobType        string `json:"blobType"`
	Sequencer       string `json:"sequencer"`
	BlobName        string `json:"blobName,omitempty"`
	ContainerName   string `json:"containerName,omitempty"`
}
