package enums

import "fmt"

// FeedbackType categorizes a visitor report.
type FeedbackType string

const (
	FeedbackTypeComplaint  FeedbackType = "complaint"
	FeedbackTypeSuggestion FeedbackType = "suggestion"
	FeedbackTypeCompliment FeedbackType = "compliment"
	FeedbackTypeBugReport  FeedbackType = "bug-report"
)

var validFeedbackTypes = []FeedbackType{
	FeedbackTypeComplaint,
	FeedbackTypeSuggestion,
	FeedbackTypeCompliment,
	FeedbackTypeBugReport,
}

// String implements fmt.Stringer.
func (f FeedbackType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FeedbackType.
func (f FeedbackType) IsValid() bool {
	for _, candidate := range validFeedbackTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFeedbackType converts raw input into a FeedbackType.
func ParseFeedbackType(value string) (FeedbackType, error) {
	for _, candidate := range validFeedbackTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid feedback type %q", value)
}

// FeedbackStatus tracks an admin's handling of a report.
type FeedbackStatus string

const (
	FeedbackStatusNew        FeedbackStatus = "new"
	FeedbackStatusInProgress FeedbackStatus = "in-progress"
	FeedbackStatusResolved   FeedbackStatus = "resolved"
)

var validFeedbackStatuses = []FeedbackStatus{
	FeedbackStatusNew,
	FeedbackStatusInProgress,
	FeedbackStatusResolved,
}

// String implements fmt.Stringer.
func (f FeedbackStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FeedbackStatus.
func (f FeedbackStatus) IsValid() bool {
	for _, candidate := range validFeedbackStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFeedbackStatus converts raw input into a FeedbackStatus.
func ParseFeedbackStatus(value string) (FeedbackStatus, error) {
	for _, candidate := range validFeedbackStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid feedback status %q", value)
}
