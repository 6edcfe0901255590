package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/restaurant/backend/internal/infrastructure/logger"
)

// OperatorHeader carries the display name of the person performing the
// request. There is no identity layer; the ledger records whatever the
// kitchen terminal sends.
const OperatorHeader = "X-Operator-Name"

// DefaultOperator is used when the header is absent
const DefaultOperator = "system"

// operatorContextKey is the gin context key for the operator name
const operatorContextKey = "operator"

// Operator reads the operator display name from the request header and
// stores it in both the gin context and the request context.
func Operator() gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := c.GetHeader(OperatorHeader)
		if operator == "" {
			operator = DefaultOperator
		}

		c.Set(operatorContextKey, operator)
		c.Request = c.Request.WithContext(logger.WithOperator(c.Request.Context(), operator))

		c.Next()
	}
}

// GetOperator returns the operator display name for the request
func GetOperator(c *gin.Context) string {
	if operator := c.GetString(operatorContextKey); operator != "" {
		return operator
	}
	return DefaultOperator
}
