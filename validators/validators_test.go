package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("someone@example.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("longenough"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
}

func TestDateOfBirthValidator(t *testing.T) {
	assert.NoError(t, DateOfBirthValidator("1990-05-17"))
	assert.ErrorIs(t, DateOfBirthValidator(""), ErrDateOfBirthEmpty)
	assert.ErrorIs(t, DateOfBirthValidator("17-05-1990"), ErrDateOfBirthInvalid)
	assert.ErrorIs(t, DateOfBirthValidator("1990-13-45"), ErrDateOfBirthInvalid)
}

func TestTextValidator(t *testing.T) {
	assert.NoError(t, TextValidator("hello"))
	assert.NoError(t, TextValidator(strings.Repeat("a", 5000)))
	assert.ErrorIs(t, TextValidator(""), ErrTextEmpty)
	assert.ErrorIs(t, TextValidator("   \n\t"), ErrTextEmpty)
	assert.ErrorIs(t, TextValidator(strings.Repeat("a", 5001)), ErrTextTooLong)
}
