package domain

// AssetKind classifies a referenced asset by its likely content type,
// inferred from the URL.
type AssetKind string

const (
	AssetKindPDF     AssetKind = "pdf"
	AssetKindImage   AssetKind = "image"
	AssetKindUnknown AssetKind = "unknown"
)

// ParseAssetKind validates a caller-supplied kind string.
func ParseAssetKind(s string) (AssetKind, bool) {
	switch AssetKind(s) {
	case AssetKindPDF, AssetKindImage, AssetKindUnknown:
		return AssetKind(s), true
	}
	return "", false
}

// FileStatus reports whether an asset made it into the analysis.
type FileStatus string

const (
	FileStatusProcessed FileStatus = "processed"
	FileStatusError     FileStatus = "error"
)

// ReportStatus is the terminal state of a report generation request,
// recorded in the audit log.
type ReportStatus string

const (
	ReportStatusCompleted ReportStatus = "completed"
	ReportStatusFailed    ReportStatus = "failed"
)
