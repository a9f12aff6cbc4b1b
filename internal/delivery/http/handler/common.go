package handler

import "github.com/gin-gonic/gin"

// ErrorResponse is the error body all handlers return.
type ErrorResponse struct {
	Error string `json:"error"`
}

// currentUserID reads the user id the auth middleware stored on the context.
func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(int)
	return userID, ok
}
