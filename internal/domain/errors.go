package domain

import "errors"

// Aggregation errors. Users only ever see UserMessage for them.
var (
	// ErrProfileNotFound is returned by Aggregate when the profile lookup fails for any reason.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNetworkFailure marks a transport-level failure talking to GitHub.
	ErrNetworkFailure = errors.New("network failure")

	// ErrRateLimited marks a GitHub primary or secondary rate limit response.
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstream marks any other non-success GitHub response.
	ErrUpstream = errors.New("unexpected upstream response")
)

// Card errors.
var (
	// ErrFaceNotFound is returned by an export when the surface lacks a front or back layer.
	ErrFaceNotFound = errors.New("card face not found")

	// ErrShareUnsupported reports that no share target is available; callers fall back to download.
	ErrShareUnsupported = errors.New("share not supported")

	// ErrStaleResult is returned by Session.Load when a newer load was issued meanwhile.
	ErrStaleResult = errors.New("result superseded by a newer request")
)

// UserMessage returns the text shown to end users for a failed aggregation.
// Every cause collapses to the same message; callers that need the cause use errors.Is.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return "User not found"
}
