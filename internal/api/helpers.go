package api

import (
	"errors"
	"net/http"
	"time"

	"schemagen/internal/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// compileError: ошибки модели — 422 с привязкой к полю, прочее — 500
func compileError(c *gin.Context, err error) {
	var fe *entity.FieldError
	if !errors.As(err, &fe) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	code := "invalid_field"
	switch {
	case errors.Is(err, entity.ErrUnsupportedDataType):
		code = "unsupported_data_type"
	case errors.Is(err, entity.ErrMalformedProperties):
		code = "malformed_properties"
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":    err.Error(),
		"code":     code,
		"entity":   fe.Entity,
		"field":    fe.Field,
		"dataType": fe.DataType,
	})
}

// requestLogger — access-лог gin через zap
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
