package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactRequestValidate(t *testing.T) {
	valid := CreateContactRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Licensing question",
		Body:    "Can I use the track in a short film?",
	}
	require.NoError(t, valid.Validate())

	noName := CreateContactRequest{Email: "ada@example.com", Body: "hi"}
	assert.EqualError(t, noName.Validate(), "name is required")

	badEmail := CreateContactRequest{Name: "Ada", Email: "nope", Body: "hi"}
	assert.EqualError(t, badEmail.Validate(), "invalid email format")

	noBody := CreateContactRequest{Name: "Ada", Email: "ada@example.com"}
	assert.EqualError(t, noBody.Validate(), "message is required")

	tooLong := CreateContactRequest{
		Name:  "Ada",
		Email: "ada@example.com",
		Body:  strings.Repeat("x", 5001),
	}
	assert.EqualError(t, tooLong.Validate(), "message must be at most 5000 characters")
}
