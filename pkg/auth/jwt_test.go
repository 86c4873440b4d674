package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshVerma23f3001159/MAD-1-HMS/internal/model"
)

func testAccount() *model.Account {
	return &model.Account{
		ID:       uuid.New(),
		Username: "johndoe",
		Role:     model.RolePatient,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	account := testAccount()

	token, err := svc.Generate(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, actor.AccountID)
	assert.Equal(t, "johndoe", actor.Username)
	assert.Equal(t, model.RolePatient, actor.Role)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}

func TestValidateWrongSecret(t *testing.T) {
	signer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := signer.Generate(testAccount())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidateExpired(t *testing.T) {
	svc := &jwtService{secret: []byte("test-secret"), expiry: -time.Minute}

	token, err := svc.Generate(testAccount())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}
