package ports

import (
	"time"

	"modboard/domain/stats"
)

// WorkbookRenderer renders a stats snapshot as a binary spreadsheet
type WorkbookRenderer interface {
	Write(data stats.ExportData, digest stats.ActivityDigest, generated time.Time) ([]byte, error)
}
