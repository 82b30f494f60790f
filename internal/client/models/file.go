package models

// FileDescriptor describes a local file for which an upload grant is requested.
type FileDescriptor struct {
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

// SignedUploadGrant is a one-shot permission to POST a file to storage.
// FormFields must be sent along with the file, unchanged.
type SignedUploadGrant struct {
	ID         string
	FileName   string
	BlobType   string
	URL        string
	FormFields map[string]string
}

// UploadState tracks a single file through the two-phase upload.
type UploadState string

const (
	StateDescribed      UploadState = "described"
	StateGrantRequested UploadState = "grant_requested"
	StateGrantReceived  UploadState = "grant_received"
	StateUploading      UploadState = "uploading"
	StateUploaded       UploadState = "uploaded"
	StateFailed         UploadState = "failed"
)

// UploadResult is the outcome of uploading one file.
type UploadResult struct {
	FileName   string
	State      UploadState
	StatusCode int
	Body       string
	Err        error
}

// Success reports whether the file reached storage.
func (r UploadResult) Success() bool {
	return r.State == StateUploaded && r.Err == nil
}
