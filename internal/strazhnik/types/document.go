package types

// DocumentKind identifies a document slot on the request form.
type DocumentKind string

const (
	DocumentPhoto        DocumentKind = "photo"
	DocumentPassportScan DocumentKind = "passport_scan"
)

func (k DocumentKind) Valid() bool {
	return k == DocumentPhoto || k == DocumentPassportScan
}

type UploadRequest struct {
	SourcePath string `json:"source_path"`
}

type UploadResponse struct {
	OK       bool         `json:"ok"`
	Kind     DocumentKind `json:"kind"`
	Filename string       `json:"filename"`
}

type DocumentLimit struct {
	Kind       DocumentKind `json:"kind"`
	MaxBytes   int64        `json:"max_bytes"`
	Extensions []string     `json:"extensions"`
}

type CatalogResponse struct {
	Departments []string        `json:"departments"`
	Employees   []string        `json:"employees"`
	Documents   []DocumentLimit `json:"documents"`
}
