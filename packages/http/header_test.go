package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader("Content-Type: application/json")

	require.NoError(t, err)
	assert.Equal(t, "Content-Type", h.Name)
	assert.Equal(t, "application/json", h.Value)
}

func TestParseHeader_TrimsWhitespace(t *testing.T) {
	h, err := ParseHeader("  Accept :  text/html  ")

	require.NoError(t, err)
	assert.Equal(t, "Accept", h.Name)
	assert.Equal(t, "text/html", h.Value)
}

func TestParseHeader_OnlyFirstColonSplits(t *testing.T) {
	h, err := ParseHeader("Authorization: Bearer abc:def:ghi")

	require.NoError(t, err)
	assert.Equal(t, "Authorization", h.Name)
	assert.Equal(t, "Bearer abc:def:ghi", h.Value)
}

func TestParseHeader_EmptyValue(t *testing.T) {
	h, err := ParseHeader("X-Empty:")

	require.NoError(t, err)
	assert.Equal(t, "X-Empty", h.Name)
	assert.Equal(t, "", h.Value)
}

func TestParseHeader_MissingColon(t *testing.T) {
	_, err := ParseHeader("NotAHeader")

	require.Error(t, err)
	var invalidHeader *InvalidHeaderError
	assert.ErrorAs(t, err, &invalidHeader)
}

func TestValidateHeader(t *testing.T) {
	assert.NoError(t, validateHeader(Header{Name: "X-Request-Id", Value: "abc123"}))
	assert.NoError(t, validateHeader(Header{Name: "Accept", Value: ""}))
}

func TestValidateHeader_EmptyName(t *testing.T) {
	err := validateHeader(Header{Name: "", Value: "value"})

	var invalidHeader *InvalidHeaderError
	assert.ErrorAs(t, err, &invalidHeader)
}

func TestValidateHeader_BadNameCharacter(t *testing.T) {
	err := validateHeader(Header{Name: "Bad Name", Value: "value"})

	var invalidHeader *InvalidHeaderError
	assert.ErrorAs(t, err, &invalidHeader)
}

func TestValidateHeader_ControlCharacterInValue(t *testing.T) {
	err := validateHeader(Header{Name: "X-Test", Value: "line1\r\nline2"})

	var invalidHeader *InvalidHeaderError
	assert.ErrorAs(t, err, &invalidHeader)
}

func TestValidateHeader_TabAllowedInValue(t *testing.T) {
	assert.NoError(t, validateHeader(Header{Name: "X-Test", Value: "a\tb"}))
}
