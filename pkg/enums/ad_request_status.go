package enums

import "fmt"

// AdRequestStatus tracks the negotiation lifecycle of an ad request.
// Accepted and rejected are terminal.
type AdRequestStatus string

const (
	AdRequestStatusPending     AdRequestStatus = "pending"
	AdRequestStatusAccepted    AdRequestStatus = "accepted"
	AdRequestStatusRejected    AdRequestStatus = "rejected"
	AdRequestStatusNegotiating AdRequestStatus = "negotiating"
)

var validAdRequestStatuses = []AdRequestStatus{
	AdRequestStatusPending,
	AdRequestStatusAccepted,
	AdRequestStatusRejected,
	AdRequestStatusNegotiating,
}

// String implements fmt.Stringer.
func (s AdRequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known AdRequestStatus.
func (s AdRequestStatus) IsValid() bool {
	for _, candidate := range validAdRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s AdRequestStatus) IsTerminal() bool {
	return s == AdRequestStatusAccepted || s == AdRequestStatusRejected
}

// CanTransition reports whether a request in the current status may move on.
// A fresh counter-offer re-enters negotiating, so negotiating -> negotiating
// is a legal edge.
func (s AdRequestStatus) CanTransition() bool {
	return s == AdRequestStatusPending || s == AdRequestStatusNegotiating
}

// ParseAdRequestStatus converts raw input into an AdRequestStatus.
func ParseAdRequestStatus(value string) (AdRequestStatus, error) {
	for _, candidate := range validAdRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ad request status %q", value)
}
