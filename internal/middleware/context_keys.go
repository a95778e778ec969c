package middleware

import "github.com/gin-gonic/gin"

// adminIDKey is the key used to store the authenticated administrator's subject.
const adminIDKey = contextKey("adminID")

// GetAdminIDFromContext retrieves the authenticated administrator subject from the Gin context.
// It returns the subject and a boolean indicating if it was found.
func GetAdminIDFromContext(c *gin.Context) (string, bool) {
	adminIDVal, exists := c.Get(string(adminIDKey))
	if !exists {
		// check in the request context as well
		if v, ok := c.Request.Context().Value(adminIDKey).(string); ok {
			return v, true
		}
		return "", false
	}

	adminID, ok := adminIDVal.(string)
	if !ok {
		return "", false
	}
	return adminID, true
}
