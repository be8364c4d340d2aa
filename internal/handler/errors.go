package handler

import (
	"github.com/Payphone-Digital/auth-service/internal/constants"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/gin-gonic/gin"
)

// writeDocument sends a JSON:API body. gin keeps a Content-Type that is
// already set.
func writeDocument(c *gin.Context, status int, doc any) {
	c.Header(constants.HeaderContentType, constants.ContentTypeJSONAPI)
	c.JSON(status, doc)
}

func writeError(c *gin.Context, err error) {
	status, doc := apperrors.Render(err)
	writeDocument(c, status, doc)
}
