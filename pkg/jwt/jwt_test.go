package jwt_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/comisiones-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests-0123456789"
	testEmail  = "ana@acme.test"
	testName   = "Ana Souza"
	testRole   = "SALES_REP"
	testIssuer = "comisiones-api-test"
)

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testEmail, testName, testRole, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testEmail, claims.Subject)
	assert.Equal(t, testName, claims.Name)
	assert.Equal(t, testRole, claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerate_PayloadUsaClaimNome(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testEmail, testName, testRole, testIssuer, 60)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	for _, key := range []string{`"sub"`, `"nome"`, `"role"`, `"iat"`, `"exp"`} {
		assert.Contains(t, string(payload), key)
	}
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testEmail, testName, testRole, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "token expirado con firma correcta debe fallar")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testEmail, testName, testRole, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)

	_, err = pkgjwt.Parse(testSecret, "")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestParse_RechazaAlgoritmoNone(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   testEmail,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "SUPER_ADMIN",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestParse_SinExpiracion(t *testing.T) {
	claims := pkgjwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: testEmail}}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testEmail, testName, testRole, testIssuer, 60)
	assert.Error(t, err)
}
