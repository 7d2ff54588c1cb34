package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
		Score int    `json:"score" validate:"min=1,max=5"`
		Name  string `form:"username" validate:"required"`
	}

	assert.Empty(t, ValidateStruct(payload{Email: "a@example.com", Score: 3, Name: "a"}))

	errs := ValidateStruct(payload{Email: "nope", Score: 7})
	assert.Equal(t, map[string]string{
		"email":    "Invalid email format",
		"score":    "Maximum is 5",
		"username": "This field is required",
	}, errs)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 10, ParseInt("", 10, 1))
	assert.Equal(t, 10, ParseInt("abc", 10, 1))
	assert.Equal(t, 10, ParseInt("0", 10, 1))
	assert.Equal(t, 0, ParseInt("0", 10, 0))
	assert.Equal(t, 10, ParseInt("-1", 10, 0))
	assert.Equal(t, 25, ParseInt("25", 10, 1))
	assert.Equal(t, 0, ParseInt("-1", 0, 0))
}
