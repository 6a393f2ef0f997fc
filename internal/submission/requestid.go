package submission

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces a fresh request id for every analysis call
type IDGenerator func() string

// NewRequestID returns an id of the form req_<unix-millis>_<8 hex chars>
func NewRequestID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("req_%d_%s", now.UnixMilli(), suffix)
}

// DefaultIDGenerator uses the wall clock
func DefaultIDGenerator() string {
	return NewRequestID(time.Now())
}
