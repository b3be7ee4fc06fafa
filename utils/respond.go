package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes a uniform JSON error body.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// GenerateRandomString returns n random hex characters.
func GenerateRandomString(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "000000"[:n]
	}
	return hex.EncodeToString(buf)[:n]
}
