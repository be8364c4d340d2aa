package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	attributesKey = "jsonapi.attributes"
	maxBodyBytes  = 1 << 20
)

// DecodeDocument reads the JSON:API request envelope and stores its
// attributes for the handler. Schema checks happen later, per version; this
// step only rejects bodies that are not a JSON object.
func DecodeDocument() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
			if err != nil {
				logger.WarnWithContext(ctx, "Failed to read request body").
					String("path", c.Request.URL.Path).
					Err(err).
					Log()
				abortWithError(c, apperrors.WrapError(apperrors.ErrInvalidInput, err))
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var doc dto.RequestDocument
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &doc); err != nil {
				logger.WarnWithContext(ctx, "Malformed JSON:API document").
					String("path", c.Request.URL.Path).
					Int("body_size", len(body)).
					Err(err).
					Log()
				abortWithError(c, apperrors.WrapError(apperrors.ErrInvalidInput, err))
				return
			}
		}

		c.Set(attributesKey, doc.AttributesOf())
		c.Next()
	}
}

// Attributes returns what DecodeDocument stored, or an empty map.
func Attributes(c *gin.Context) map[string]any {
	if v, ok := c.Get(attributesKey); ok {
		if attrs, ok := v.(map[string]any); ok {
			return attrs
		}
	}
	return map[string]any{}
}
