package state

import "context"

// Bucket names used by the console.
const (
	BucketElections    = "elections"
	BucketCandidates   = "candidates"
	BucketVoters       = "voters"
	BucketTokenBatches = "token_batches"
	BucketAuditLog     = "audit_log"
)

type Repository interface {
	// Load decodes the bucket into dst. ok is false when the bucket is missing.
	// A payload that cannot be decoded yields an error wrapping ErrCorrupt.
	// dst is left untouched unless ok is true.
	Load(ctx context.Context, bucket string, dst any) (ok bool, err error)
	Save(ctx context.Context, bucket string, v any) error
	Delete(ctx context.Context, bucket string) error
}
