package binder

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type datePayload struct {
	Value string `validate:"date"`
}

type urlPayload struct {
	Value string `validate:"url"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("date", dateValidator))
	require.NoError(t, validate.RegisterValidation("url", urlValidator))
	return validate
}

func TestDateValidator(t *testing.T) {
	validate := newValidate(t)

	assert.NoError(t, validate.Struct(datePayload{Value: "2024-03-20"}))
	assert.NoError(t, validate.Struct(datePayload{Value: ""}))
	assert.Error(t, validate.Struct(datePayload{Value: "03/20/2024"}))
	assert.Error(t, validate.Struct(datePayload{Value: "2024-13-01"}))
}

func TestURLValidator(t *testing.T) {
	validate := newValidate(t)

	assert.NoError(t, validate.Struct(urlPayload{Value: "https://example.com/book"}))
	assert.NoError(t, validate.Struct(urlPayload{Value: ""}))
	assert.Error(t, validate.Struct(urlPayload{Value: "not a url"}))
	assert.Error(t, validate.Struct(urlPayload{Value: "/relative/path"}))
}
