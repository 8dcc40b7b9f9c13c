package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserEmail   = "email"
)

// UserUID extracts the Firebase UID from the Gin context.
// Set by middleware.FirebaseAuth on every authenticated route.
func UserUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserEmail extracts the authenticated user's email, when the ID token
// carried one.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserEmail))
}
