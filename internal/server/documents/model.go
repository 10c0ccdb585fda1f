package documents

import "time"

// Document is the stored metadata for one uploaded file. The bytes live in
// the object store under S3Key; only metadata is kept in postgres.
type Document struct {
	ID          string
	Filename    string
	S3Key       string
	UploadDate  time.Time
	IsEncrypted bool
	OwnerID     string
}
