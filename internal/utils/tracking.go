package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const trackingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTrackingID mints an opaque identifier issued to an application on
// first submission, e.g. "APP-1714060800-K2X9PQ4RD". The random suffix
// is URL-safe and uppercase to match what citizens see in the original
// tracking links.
func NewTrackingID() string {
	return fmt.Sprintf("APP-%d-%s", time.Now().Unix(), gonanoid.MustGenerate(trackingAlphabet, 9))
}
