package service

import (
	"context"
	"log"

	"github.com/puzzelhulp/woordzoeker-backend/internal/api/http/middleware"
)

// Logger provides structured logging for services
type Logger struct {
	requestID string
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	log.Printf("[error] request_id=%s operation=%s error=%v", l.requestID, operation, err)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	log.Printf("[info] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	log.Printf("[warn] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}
