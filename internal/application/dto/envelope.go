package dto

import "github.com/gin-gonic/gin"

// Success wraps a single entity.
func Success(data interface{}) gin.H {
	return gin.H{"success": true, "data": data}
}

// List wraps a collection with its count.
func List(data interface{}, count int) gin.H {
	return gin.H{"success": true, "data": data, "count": count}
}

// Created wraps a newly created entity.
func Created(data interface{}) gin.H {
	return gin.H{"success": true, "created": true, "data": data}
}

// Updated wraps an updated entity.
func Updated(data interface{}) gin.H {
	return gin.H{"success": true, "updated": true, "data": data}
}

// Deleted reports a successful delete.
func Deleted() gin.H {
	return gin.H{"success": true, "deleted": true}
}

// Completed wraps a task that was marked complete.
func Completed(data interface{}) gin.H {
	return gin.H{"success": true, "completed": true, "data": data}
}

// ErrorEnvelope is the uniform error body: code, description, correlation id,
// and optional per-field details.
type ErrorEnvelope struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description"`
	ErrorID          string            `json:"errorId,omitempty"`
	Details          map[string]string `json:"details,omitempty"`
}
