package middleware

import (
	"github.com/Payphone-Digital/auth-service/internal/constants"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/gin-gonic/gin"
)

func abortWithError(c *gin.Context, err error) {
	status, doc := apperrors.Render(err)
	c.Header(constants.HeaderContentType, constants.ContentTypeJSONAPI)
	c.AbortWithStatusJSON(status, doc)
}
