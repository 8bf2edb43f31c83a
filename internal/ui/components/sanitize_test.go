package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineFlattensTagNames(t *testing.T) {
	name := "\x1b]8;;https://evil\x07Drivers\x1b]8;;\x07\nNorth\tTeam  "
	assert.Equal(t, "Drivers North Team", SanitizeOneLine(name))
}

func TestSanitizeTextKeepsLayoutButDropsControls(t *testing.T) {
	in := "Ada\u202e ecalevoL\x1b[31m\nmember\x00"
	assert.Equal(t, "Ada ecalevoL\nmember", SanitizeText(in))
}

func TestSanitizeTextEmpty(t *testing.T) {
	assert.Empty(t, SanitizeText(""))
	assert.Empty(t, SanitizeOneLine(" \n\t "))
}
