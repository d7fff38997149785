package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateReferenceCode returns a short human-facing code, e.g. a
// participant's registration reference.
func GenerateReferenceCode() string {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return ""
	}
	return id
}

// GenerateSlugSuffix returns a short suffix used to uniquify slugs on collision
func GenerateSlugSuffix() string {
	id, err := gonanoid.Generate(idAlphabet, 6)
	if err != nil {
		return ""
	}
	return id
}
