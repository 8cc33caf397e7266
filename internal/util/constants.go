package util

// Backends de stockage des médias
const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Types MIME autorisés pour l'upload
const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

// Extensions vidéo acceptées à l'upload
var AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}
