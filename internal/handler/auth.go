package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Thin session glue. Real user accounts live upstream; this only gates the
// API behind an invite code when one is configured.

type verifyRequest struct {
	Code string `json:"code"`
}

var tokenSecret = "statvalue-secret-key"

func init() {
	if secret := os.Getenv("TOKEN_SECRET"); secret != "" {
		tokenSecret = secret
	}
}

// generateToken builds a token of the form timestamp.signature.
func generateToken() string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	h := hmac.New(sha256.New, []byte(tokenSecret))
	h.Write([]byte(timestamp))
	signature := hex.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s.%s", timestamp, signature)
}

// ValidateToken checks the signature and the 7-day expiry.
func ValidateToken(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return false
	}
	timestamp, signature := parts[0], parts[1]

	h := hmac.New(sha256.New, []byte(tokenSecret))
	h.Write([]byte(timestamp))
	expectedSig := hex.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(signature), []byte(expectedSig)) {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	return time.Now().Unix()-ts <= 7*24*3600
}

// VerifyInviteCode exchanges a valid invite code for a session token. With no
// invite code configured, everyone passes.
func VerifyInviteCode(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request",
		})
		return
	}

	inviteCode := os.Getenv("INVITE_CODE")
	if inviteCode == "" || req.Code == inviteCode {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "verified",
			"token":   generateToken(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"message": "invalid invite code",
	})
}

// AuthMiddleware rejects requests without a valid token when an invite code
// is configured.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("INVITE_CODE") == "" {
			c.Next()
			return
		}

		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			c.Abort()
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		if !ValidateToken(token) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "token invalid or expired",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
