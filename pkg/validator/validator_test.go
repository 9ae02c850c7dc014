package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8"`
	DayOfWeek *int   `validate:"omitempty,gte=0,lte=6"`
}

func TestValidate(t *testing.T) {
	cv := NewValidator()

	t.Run("valid struct passes", func(t *testing.T) {
		day := 3
		assert.NoError(t, cv.Validate(&registerForm{
			Email:     "doc@example.com",
			Password:  "password123",
			DayOfWeek: &day,
		}))
	})

	t.Run("missing and malformed fields reported", func(t *testing.T) {
		err := cv.Validate(&registerForm{Email: "not-an-email", Password: "short"})
		require.Error(t, err)

		formatted := cv.FormatValidationErrors(err)
		assert.Equal(t, "Email must be a valid email address", formatted["Email"])
		assert.Equal(t, "Password must be at least 8 characters", formatted["Password"])
	})

	t.Run("range tags reported", func(t *testing.T) {
		day := 9
		err := cv.Validate(&registerForm{
			Email:     "doc@example.com",
			Password:  "password123",
			DayOfWeek: &day,
		})
		require.Error(t, err)

		formatted := cv.FormatValidationErrors(err)
		assert.Equal(t, "DayOfWeek must be less than or equal to 6", formatted["DayOfWeek"])
	})
}
