package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNodeURL(t *testing.T) {
	assert.NoError(t, ValidateNodeURL("http://127.0.0.1:12391"))
	assert.NoError(t, ValidateNodeURL(" https://node.example.org "))
	assert.ErrorContains(t, ValidateNodeURL(""), "required")
	assert.ErrorContains(t, ValidateNodeURL("127.0.0.1:12391"), "look like")
	assert.ErrorContains(t, ValidateNodeURL("ftp://node"), "http://")
	assert.ErrorContains(t, ValidateNodeURL("http://"), "look like")
}
