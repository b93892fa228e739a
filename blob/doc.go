// Package blob houses concrete implementations of core.BlobStore, the
// best-effort byte storage backing file attachments. Keys follow the
// core.BlobKey scheme ("file_" + message id). Blob failures are logged by
// callers and never roll back message-store mutations: a file message may
// exist with an attachment whose blob is no longer retrievable.
//
// Add additional backends (S3, GCS, database) in sub-packages without
// changing any calling code; only the wiring layer decides which
// implementation to instantiate.
package blob
