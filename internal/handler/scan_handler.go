package handler

import (
	"net/http"

	"tag_tracker_go/internal/service"

	"github.com/gin-gonic/gin"
)

// ScanHandler forwards tag photos to the vision model.
type ScanHandler struct {
	scanService service.ScanService
}

func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// UploadRequest carries a base64 image, optionally as a data URL.
type UploadRequest struct {
	Image string `json:"image"`
}

// Upload returns the model's raw answer along with the stripped image
// payload, so the client can post it back unchanged to /save.
func (h *ScanHandler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	result, err := h.scanService.Extract(c.Request.Context(), req.Image)
	if err != nil {
		respondError(c, "ScanHandler.Upload", err)
		return
	}

	resp := gin.H{
		"success":    true,
		"data":       result.Text,
		"image_data": result.ImageData,
	}
	if result.Fields != nil {
		resp["fields"] = result.Fields
	}
	c.JSON(http.StatusOK, resp)
}
