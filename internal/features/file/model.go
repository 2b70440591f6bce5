package file

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoredFile is the metadata record for a file kept on local disk. The
// bytes live under the configured upload directory; Mongo only tracks
// where they are and who put them there.
type StoredFile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FamilyID         primitive.ObjectID `bson:"family_id" json:"family_id"`
	OriginalFilename string             `bson:"original_filename" json:"original_filename"`
	Path             string             `bson:"path" json:"-"`
	Size             int64              `bson:"size" json:"size"`
	MimeType         string             `bson:"mime_type" json:"mime_type"`
	UploadedBy       primitive.ObjectID `bson:"uploaded_by" json:"uploaded_by"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`

	// DownloadURL is filled at read time with a signed, expiring link.
	DownloadURL string `bson:"-" json:"download_url,omitempty"`
}
