package entity

import "time"

// DownloadID uniquely identifies a download.
type DownloadID int64

// DownloadStatus is the lifecycle state of a download.
type DownloadStatus string

const (
	DownloadPending   DownloadStatus = "pending"
	DownloadActive    DownloadStatus = "active"
	DownloadCompleted DownloadStatus = "completed"
	DownloadCancelled DownloadStatus = "cancelled"
	DownloadFailed    DownloadStatus = "failed"
)

// Download represents a file download tracked by the host.
type Download struct {
	ID            DownloadID     `json:"id"`
	URL           string         `json:"url"`
	Filename      string         `json:"filename"`
	Path          string         `json:"path"`
	Size          int64          `json:"size"`
	ReceivedBytes int64          `json:"receivedBytes"`
	Status        DownloadStatus `json:"status"`
	CreatedAt     time.Time      `json:"timestamp"`
}

// NewDownload creates a pending download record.
func NewDownload(url, filename, path string, size int64) *Download {
	return &Download{
		URL:       url,
		Filename:  filename,
		Path:      path,
		Size:      size,
		Status:    DownloadPending,
		CreatedAt: time.Now(),
	}
}

// Progress returns completion as a fraction between 0 and 1.
// Unknown sizes report 0 until the download completes.
func (d *Download) Progress() float64 {
	if d.Status == DownloadCompleted {
		return 1.0
	}
	if d.Size <= 0 {
		return 0
	}
	p := float64(d.ReceivedBytes) / float64(d.Size)
	if p > 1.0 {
		p = 1.0
	}
	return p
}

// Finished reports whether the download reached a terminal state.
func (d *Download) Finished() bool {
	switch d.Status {
	case DownloadCompleted, DownloadCancelled, DownloadFailed:
		return true
	}
	return false
}
