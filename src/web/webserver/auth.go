package webserver

import (
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Auth exchanges the shared API key for a short-lived bearer token.
type Auth struct {
	apiKey    string
	jwtSecret []byte
}

func NewAuth(apiKey string, secret []byte) Auth {
	return Auth{apiKey: apiKey, jwtSecret: secret}
}

func (a Auth) Token(c *gin.Context) {
	var req struct {
		APIKey string `json:"api_key" binding:"required,min=16,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if a.apiKey == "" || subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(a.apiKey)) != 1 {
		log.Printf("Rejected token request from IP %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid api key"})
		return
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "api",
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	})
	signed, err := tok.SignedString(a.jwtSecret)
	if err != nil {
		log.Printf("Failed to sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed})
}
