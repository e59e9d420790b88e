package enums

import "fmt"

// FeedFormat selects the catalog listing output encoding.
type FeedFormat string

const (
	FeedFormatJSON   FeedFormat = "json"
	FeedFormatGoogle FeedFormat = "google"
	FeedFormatCSV    FeedFormat = "csv"
)

var validFeedFormats = []FeedFormat{
	FeedFormatJSON,
	FeedFormatGoogle,
	FeedFormatCSV,
}

func (f FeedFormat) String() string {
	return string(f)
}

func (f FeedFormat) IsValid() bool {
	for _, candidate := range validFeedFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFeedFormat converts raw input into a FeedFormat; empty means JSON.
func ParseFeedFormat(value string) (FeedFormat, error) {
	if value == "" {
		return FeedFormatJSON, nil
	}
	for _, candidate := range validFeedFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid feed format %q", value)
}
