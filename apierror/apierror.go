// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apierror

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerError is the JSON error body returned by API endpoints.
type ServerError struct {
	StatusCode    int    `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	Data          any    `json:"data,omitempty"`
}

// New creates a ServerError. A zero statusCode becomes 500.
func New(statusCode int, statusMessage string, data any) *ServerError {
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	return &ServerError{
		StatusCode:    statusCode,
		StatusMessage: statusMessage,
		Data:          data,
	}
}

// Wrap creates a ServerError carrying err's message as its data.
func Wrap(statusCode int, statusMessage string, err error) *ServerError {
	var data any
	if err != nil {
		data = err.Error()
	}
	return New(statusCode, statusMessage, data)
}

func (e *ServerError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%d %s: %v", e.StatusCode, e.StatusMessage, e.Data)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.StatusMessage)
}

// Abort writes e as the response body and stops the handler chain.
func Abort(c *gin.Context, e *ServerError) {
	c.AbortWithStatusJSON(e.StatusCode, e)
}
