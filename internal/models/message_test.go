package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_IsOwnedBy(t *testing.T) {
	msg := &Message{ID: 12345, Text: "Our Users MSG", UserID: 7}

	assert.True(t, msg.IsOwnedBy(7))
	assert.False(t, msg.IsOwnedBy(80085))
	assert.False(t, msg.IsOwnedBy(0))

	var missing *Message
	assert.False(t, missing.IsOwnedBy(7))
}
