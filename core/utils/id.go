package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const requestIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateRequestID returns a short correlation id for one inbound request.
func GenerateRequestID() string {
	id, err := gonanoid.Generate(requestIDAlphabet, 12)
	if err != nil {
		return "unknown"
	}
	return id
}
