package helper

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GenerateUUID creates a random unique UUID string
func GenerateUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %v", err)
	}
	return id.String(), nil
}

// Timed logs how long a pipeline stage took. Use with defer:
//
//	defer helper.Timed("embed")()
func Timed(stage string) func() {
	start := time.Now()
	return func() {
		log.Info().Str("stage", stage).Dur("took", time.Since(start)).Msg("stage completed")
	}
}
