// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quote

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"DemoLab/DemoServer/activity"
	"DemoLab/DemoServer/apierror"
)

// FailureMessage is the statusMessage of every failed quote request.
const FailureMessage = "Failed to fetch from Hitokoto API"

// Handler serves GET /api/post.
type Handler struct {
	source   Source
	logger   *zap.Logger
	recorder activity.Recorder
}

// NewHandler creates the quote endpoint. logger and recorder may be nil.
func NewHandler(source Source, logger *zap.Logger, recorder activity.Recorder) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		source:   source,
		logger:   logger,
		recorder: recorder,
	}
}

// Get returns the upstream body verbatim, or a 500 ServerError whose data
// is the underlying error message.
func (h *Handler) Get(c *gin.Context) {
	body, err := h.source.Fetch(c.Request.Context())
	if err != nil {
		h.logger.Warn("Quote fetch failed", zap.Error(err))
		if h.recorder != nil {
			h.recorder.Record(activity.KindQuote, "", err.Error())
		}
		apierror.Abort(c, apierror.Wrap(http.StatusInternalServerError, FailureMessage, err))
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
