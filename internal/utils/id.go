package utils

import (
	"fmt"
	"strconv"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const nanoIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateNanoIDWithPrefix returns "<prefix>_<random>" with a random part of
// the given length.
func GenerateNanoIDWithPrefix(prefix string, length int) string {
	id, err := gonanoid.Generate(nanoIDAlphabet, length)
	if err != nil {
		panic(err)
	}
	if prefix == "" {
		return id
	}
	return fmt.Sprintf("%s_%s", prefix, id)
}

// EntityId formats a numeric catalog id as the entity id used in span tags
// and event envelopes.
func EntityId(id int) string {
	return strconv.Itoa(id)
}
