package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Study2026", true},
		{"Ab1", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"MyPassword1", false},
		{strings.Repeat("Aa1", 25), false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("learner@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.io"))
}

func TestValidateObjective(t *testing.T) {
	assert.Error(t, ValidateObjective(""))
	assert.Error(t, ValidateObjective("0123456789"))
	assert.Error(t, ValidateObjective("   short     "))
	assert.NoError(t, ValidateObjective("01234567890"))
	// Length counts characters, not bytes.
	assert.Error(t, ValidateObjective("掌握数据结构与算法"))
	assert.NoError(t, ValidateObjective("掌握数据结构与算法并完成项目"))
	assert.Error(t, ValidateObjective(strings.Repeat("x", MaxObjectiveLength+1)))
}

func TestValidateKeyResults(t *testing.T) {
	assert.Error(t, ValidateKeyResultCount(0))
	assert.NoError(t, ValidateKeyResultCount(1))
	assert.NoError(t, ValidateKeyResultCount(5))
	assert.Error(t, ValidateKeyResultCount(6))

	assert.Error(t, ValidateKeyResultText("  "))
	assert.NoError(t, ValidateKeyResultText("Solve 20 problems"))
}

func TestValidateProgressAndChat(t *testing.T) {
	assert.NoError(t, ValidateProgress(0))
	assert.NoError(t, ValidateProgress(100))
	assert.Error(t, ValidateProgress(-1))
	assert.Error(t, ValidateProgress(101))

	assert.Error(t, ValidateChatMessage(" \n "))
	assert.NoError(t, ValidateChatMessage("hi"))
	assert.NoError(t, ValidateChatMessage(strings.Repeat("好", MaxChatMessageLength)))
	assert.Error(t, ValidateChatMessage(strings.Repeat("好", MaxChatMessageLength+1)))
}
