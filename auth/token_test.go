package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/toyfront/storefront-gateway/auth"
	"github.com/toyfront/storefront-gateway/models"
)

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokenService("", time.Hour)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := auth.NewTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	user := &models.User{ID: 7, Username: "ana", Roles: []string{"cashier", "staff"}}
	token, err := svc.Generate(user)
	assert.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)

	userID, err := auth.UserIDFromClaims(claims)
	assert.NoError(t, err)
	assert.Equal(t, "7", userID)
	assert.Equal(t, []string{"cashier", "staff"}, auth.RolesFromClaims(claims))
}

func TestValidate_RejectsExpiredToken(t *testing.T) {
	svc, _ := auth.NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate(&models.User{ID: 1, Username: "ana"})
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidate_RejectsTokenFromOtherSecret(t *testing.T) {
	issuer, _ := auth.NewTokenService("secret-a", time.Hour)
	verifier, _ := auth.NewTokenService("secret-b", time.Hour)

	token, err := issuer.Generate(&models.User{ID: 1, Username: "ana"})
	assert.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}
