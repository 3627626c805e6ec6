package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, ComparePasswords(hash, "secret123"))
	assert.Error(t, ComparePasswords(hash, "wrong"))
}

func TestGenerateSecureToken(t *testing.T) {
	tok, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, tok, 64) // hex doubles the byte length

	other, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}

func TestBrazilLocation(t *testing.T) {
	ts := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC).In(BrazilLocation())
	_, offset := ts.Zone()
	assert.Equal(t, -3*3600, offset)
}

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := CreateToken(userID, "constellation_user")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "constellation_user", claims.UserType)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestHandleServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err     error
		code    int
		message string
	}{
		{ErrInvalidCredentials, 401, "Invalid email or password"},
		{ErrEmailAlreadyExists, 400, "Este email já está cadastrado"},
		{ErrCreciAlreadyExists, 400, "Este CRECI já está cadastrado no programa Founding 100"},
		{ErrProgramSoldOut, 400, "Programa Founding 100 esgotado. Todas as vagas foram preenchidas."},
		{ErrMissingFields, 400, "Campos obrigatórios faltando"},
		{ErrCompanyFieldsMissing, 400, "Dados da empresa são obrigatórios"},
		{ErrMemberNotFound, 404, "Founding member not found"},
		{ErrListingNotFound, 404, "Listing not found"},
		{ErrPostNotFound, 404, "Post not found"},
		{ErrPostForbidden, 403, "You do not own this post"},
		{ErrPostPublished, 400, "Cannot modify a published post"},
		{ErrNoPlatforms, 400, "At least one platform must be selected"},
		{ErrScheduleInPast, 400, "Scheduled time must be in the future"},
		{ErrFlowNotFound, 404, "Signup session not found or expired"},
		{ErrFlowWrongStep, 409, "Signup step out of order"},
		{ErrPaymentGateway, 500, "Erro ao criar pagamento"},
		{ErrDatabaseError, 500, "Internal server error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("trace_id", "trace-1")

		HandleServiceError(c, tc.err)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		assert.Contains(t, w.Body.String(), tc.message, tc.err.Error())
		assert.Contains(t, w.Body.String(), "trace-1")
	}
}
