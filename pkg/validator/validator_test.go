package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingRequest struct {
	ProductID string `validate:"required,uuid"`
	Rating    int    `validate:"required,min=1,max=5"`
	Comment   string `validate:"max=20"`
}

func TestValidate_Valid(t *testing.T) {
	req := ratingRequest{
		ProductID: "7a9f5f58-3b41-4a9e-90d3-2f6a1f0f8d11",
		Rating:    4,
		Comment:   "lovely texture",
	}
	assert.NoError(t, Validate(req))
}

func TestValidate_RatingOutOfRange(t *testing.T) {
	req := ratingRequest{
		ProductID: "7a9f5f58-3b41-4a9e-90d3-2f6a1f0f8d11",
		Rating:    6,
	}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Error(), "Rating")
	assert.Contains(t, valErr.Fields()["Rating"], "at most 5")
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(ratingRequest{Rating: 3})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "is required", valErr.Fields()["ProductID"])
}

func TestValidate_MultipleFieldErrors(t *testing.T) {
	err := Validate(ratingRequest{ProductID: "not-a-uuid", Rating: 0, Comment: "way too long a comment here"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	fields := valErr.Fields()
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "ProductID")
	assert.Contains(t, fields, "Rating")
	assert.Contains(t, fields, "Comment")
}
