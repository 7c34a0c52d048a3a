package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	ExportMarkdown = "markdown"
	ExportYAML     = "yaml"
)

const (
	MimeMarkdown = "text/markdown; charset=utf-8"
	MimeYAML     = "application/yaml"
)

// MaxTimerHistory bounds the delivered timer history.
const MaxTimerHistory = 20
