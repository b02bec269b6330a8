package response

import (
	"net/http"

	"spam-shield/internal/common/apperr"

	"github.com/gin-gonic/gin"
)

// Error writes err as {"error": message, "code": code}
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	body := gin.H{"error": apperr.Message(err)}
	if code := apperr.CodeOf(err); code != "" {
		body["code"] = code
	}
	c.JSON(apperr.HTTPStatus(err), body)
}

// BadRequest answers a request that failed binding
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": apperr.CodeInvalidInput})
}
