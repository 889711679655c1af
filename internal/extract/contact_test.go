package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", Email("Contact: jane@example.com or by phone"))
	assert.Equal(t, "first.last+tag@sub.example.co", Email("first.last+tag@sub.example.co"))
	assert.Equal(t, "", Email("no address here"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "555-123-4567", Phone("call 555-123-4567 anytime"))
	assert.Equal(t, "(555) 123-4567", Phone("office: (555) 123-4567"))
	assert.Equal(t, "+1-555-123-4567", Phone("+1-555-123-4567"))
	assert.Equal(t, "", Phone("no number"))
}
