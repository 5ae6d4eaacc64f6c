package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const correlationIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewCorrelationID generates a short id that ties a layout job's API
// request, queue message and log lines together.
func NewCorrelationID() (string, error) {
	return gonanoid.Generate(correlationIDAlphabet, 12)
}
