package rotawatch

import (
	"time"

	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/scheduler"
)

// Config holds the configuration for a Watcher.
type Config struct {
	// CheckInterval is the time between rotation checks.
	CheckInterval time.Duration

	// RequestTimeout is the HTTP timeout for rotation API requests.
	RequestTimeout time.Duration

	// DeliveryTimeout is the HTTP timeout per webhook upload.
	DeliveryTimeout time.Duration

	// LatestURL returns the current rotation ID.
	LatestURL string

	// PoolURL returns a pool's map IDs; {pool} is replaced by the pool key.
	PoolURL string

	// ImageDir is where the local sink writes the summary.
	ImageDir string

	// ImageKey is the file name (object key) of the summary.
	ImageKey string

	// MessageContent is the optional text posted with the image.
	MessageContent string

	// Username overrides the webhook's display name when set.
	Username string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CheckInterval:   scheduler.DefaultInterval,
		RequestTimeout:  rotation.DefaultRequestTimeout,
		DeliveryTimeout: 30 * time.Second,
		LatestURL:       rotation.DefaultLatestURL,
		PoolURL:         rotation.DefaultPoolURL,
		ImageDir:        ".",
		ImageKey:        "rotation.png",
	}
}
