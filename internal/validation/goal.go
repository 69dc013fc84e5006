package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/templui/studyokr/internal/model"
)

const (
	MaxObjectiveLength   = 500
	MaxKeyResultLength   = 300
	MaxChatMessageLength = 2000
)

// ValidateObjective requires more than model.MinObjectiveLength characters after trimming.
func ValidateObjective(objective string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(objective))

	if n == 0 {
		return errors.New("objective is required")
	}

	if n <= model.MinObjectiveLength {
		return fmt.Errorf("objective must be longer than %d characters", model.MinObjectiveLength)
	}

	if n > MaxObjectiveLength {
		return fmt.Errorf("objective is too long (max %d characters)", MaxObjectiveLength)
	}

	return nil
}

func ValidateKeyResultCount(n int) error {
	if n < model.MinKeyResults || n > model.MaxKeyResults {
		return fmt.Errorf("add between %d and %d key results", model.MinKeyResults, model.MaxKeyResults)
	}
	return nil
}

func ValidateKeyResultText(text string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))

	if n == 0 {
		return errors.New("key result text is required")
	}

	if n > MaxKeyResultLength {
		return fmt.Errorf("key result is too long (max %d characters)", MaxKeyResultLength)
	}

	return nil
}

func ValidateProgress(percent int) error {
	if percent < 0 || percent > 100 {
		return errors.New("progress must be between 0 and 100")
	}
	return nil
}

func ValidateChatMessage(text string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))

	if n == 0 {
		return errors.New("message is required")
	}

	if n > MaxChatMessageLength {
		return fmt.Errorf("message is too long (max %d characters)", MaxChatMessageLength)
	}

	return nil
}
