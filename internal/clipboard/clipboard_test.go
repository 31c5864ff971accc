package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrite_Empty(t *testing.T) {
	assert.ErrorIs(t, Write(""), ErrEmpty)
}

func TestWrite_Unavailable(t *testing.T) {
	if Available() {
		t.Skip("clipboard backend present")
	}
	assert.ErrorIs(t, Write("กา"), ErrUnavailable)
}
