package config

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func asValidationErrors(t *testing.T, err error) validator.ValidationErrors {
	t.Helper()
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	return validationErrors
}
