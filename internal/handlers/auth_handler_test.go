package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/config"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

func authFixture(t *testing.T) (*gin.Engine, fakeUsers) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := fakeUsers{byEmail: map[string]*models.User{
		"ana@example.com": {ID: 3, Name: "Ana", Email: "ana@example.com", PasswordHash: string(hash), Role: models.RoleBarber, Active: true},
	}}

	h := NewAuthHandler(users, &config.Config{JWTSecret: "s3cret"})

	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	return r, users
}

func TestLogin_IssuesToken(t *testing.T) {
	r, _ := authFixture(t)

	w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "ANA@example.com", "password": "segredo123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	raw := decode(w)["token"].(string)
	tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(3), claims["sub"])
	assert.Equal(t, "barber", claims["role"])
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	r, _ := authFixture(t)

	w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "ana@example.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(w)["error_code"])

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "bruno@example.com", "password": "segredo123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMe(t *testing.T) {
	_, users := authFixture(t)
	h := NewMeHandler(users)

	r := gin.New()
	r.GET("/api/me", asUser(3, models.RoleBarber), h.GetMe)
	r.GET("/api/ghost", asUser(99, models.RoleBarber), h.GetMe)

	w := doJSON(r, http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana", decode(w)["user"].(map[string]any)["name"])

	w = doJSON(r, http.MethodGet, "/api/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
