package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTargetType(t *testing.T) {
	for _, valid := range []string{TargetTypePost, TargetTypeComment, TargetTypeGrid, TargetTypeProfile, TargetTypeChatMessage} {
		assert.True(t, ValidTargetType(valid), valid)
	}

	for _, invalid := range []string{"", "dm", "Post", "posts"} {
		assert.False(t, ValidTargetType(invalid), invalid)
	}
}
