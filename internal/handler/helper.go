package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tag_tracker_go/internal/service"
	"tag_tracker_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// mapServiceError turns a service error into the HTTP status, error kind and
// client-facing message. Every handler goes through here so the response
// shape stays the same across endpoints.
func mapServiceError(err error) (httpStatus int, kind, message string) {
	kind = service.Kind(err)
	switch {
	case errors.Is(err, service.ErrFolderAlreadyExists):
		return http.StatusBadRequest, kind, "A folder with that name already exists"
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, kind, err.Error()
	case errors.Is(err, service.ErrFolderNotFound):
		return http.StatusNotFound, kind, "Folder not found"
	case errors.Is(err, service.ErrTagNotFound):
		return http.StatusNotFound, kind, "Tag not found"
	case errors.Is(err, service.ErrImageNotFound):
		return http.StatusNotFound, kind, "Tag has no stored image"
	default:
		return http.StatusInternalServerError, kind, err.Error()
	}
}

// respondError logs err and writes the failure body.
func respondError(c *gin.Context, op string, err error) {
	status, kind, msg := mapServiceError(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %v", op, err)
	} else {
		log.Warnf("%s: %v", op, err)
	}
	c.JSON(status, failure(kind, msg))
}

// respondBadRequest is for requests rejected before reaching a service.
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, failure(service.KindValidation, msg))
}

func failure(kind, msg string) gin.H {
	return gin.H{
		"success": false,
		"error":   msg,
		"kind":    kind,
	}
}

// pathID reads a positive integer path parameter. On failure it writes a 404,
// the same answer an unknown id gets, and returns false.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, ok := parsePositiveID(c.Param(name))
	if !ok {
		c.JSON(http.StatusNotFound, failure(service.KindNotFound, "Not found"))
		return 0, false
	}
	return id, true
}

// folderFilter reads the optional folder_id query parameter.
// Anything other than a positive integer means no filter.
func folderFilter(c *gin.Context) *uint {
	id, ok := parsePositiveID(c.Query("folder_id"))
	if !ok {
		return nil
	}
	return &id
}

func parsePositiveID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
