package llmservice

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"empty response", ErrEmptyResponse, ErrMalformed},
		{"wrapped empty response", fmt.Errorf("generate: %w", ErrEmptyResponse), ErrMalformed},
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"dial refused", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, ErrNetwork},
		{"url error", &url.Error{Op: "Post", URL: "http://localhost:11434", Err: errors.New("no route to host")}, ErrNetwork},
		{"anything else", errors.New("status 500"), ErrProtocol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "network", ErrNetwork.String())
	assert.Equal(t, "timeout", ErrTimeout.String())
	assert.Equal(t, "protocol", ErrProtocol.String())
	assert.Equal(t, "malformed-response", ErrMalformed.String())
}
