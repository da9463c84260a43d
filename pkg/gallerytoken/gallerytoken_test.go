package gallerytoken

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Generate("event-42", secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	eventID, err := Validate(token, secret)
	require.NoError(t, err)
	require.Equal(t, "event-42", eventID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := Generate("event-42", []byte("secret-a"))
	require.NoError(t, err)

	_, err = Validate(token, []byte("secret-b"))
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate("not-a-token", []byte("secret"))
	require.Error(t, err)
}
