package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_Region(t *testing.T) {
	testCases := []struct {
		location string
		expected string
	}{
		{location: "Berlin, Germany", expected: "Berlin"},
		{location: "Tokyo", expected: "Tokyo"},
		{location: "", expected: ""},
		{location: ",Nowhere", expected: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.location, func(t *testing.T) {
			assert.Equal(t, tc.expected, Profile{Location: tc.location}.Region())
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "User not found", UserMessage(ErrProfileNotFound))
	assert.Equal(t, "User not found", UserMessage(fmt.Errorf("fetch repositories: %w", ErrNetworkFailure)))
	assert.Equal(t, "User not found", UserMessage(errors.New("anything")))
}
