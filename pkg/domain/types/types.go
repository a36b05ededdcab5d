package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	UserID        string
	ScanID        string
	ScanType      string
	RequestID     string
	SessionSecret string
)

const (
	ScanTypeNmap           ScanType = "nmap"
	ScanTypeNessusBasic    ScanType = "nessus_basic"
	ScanTypeNessusAdvanced ScanType = "nessus_advanced"
	ScanTypeNessusWeb      ScanType = "nessus_web"
)

// IsValid reports whether the scan type is one of the supported workflow
// variants. Scan types are allow-listed because the value is forwarded to
// the external workflow engine as-is.
func (x ScanType) IsValid() bool {
	switch x {
	case ScanTypeNmap, ScanTypeNessusBasic, ScanTypeNessusAdvanced, ScanTypeNessusWeb:
		return true
	}
	return false
}

func NewScanID() ScanID {
	return ScanID(uuid.NewString())
}

func NewUserID() UserID {
	return UserID(uuid.NewString())
}

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x SessionSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x SessionSecret) String() string {
	return "***********"
}
