package server

import (
	"github.com/gin-gonic/gin"

	"github.com/tordrt/umlgen"
	"github.com/tordrt/umlgen/internal/diagram"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Error    string            `json:"error,omitempty"`
	Counts   umlgen.Counts     `json:"counts"`
	Data     any               `json:"data,omitempty"`
	Warnings []diagram.Warning `json:"warnings,omitempty"`
}

func success(c *gin.Context, status int, counts umlgen.Counts, data any, warnings []diagram.Warning, message string) {
	c.JSON(status, APIResponse{
		Success:  true,
		Message:  message,
		Counts:   counts,
		Data:     data,
		Warnings: warnings,
	})
}

func fail(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, APIResponse{Success: false, Error: err.Error()})
}
