package handler

import (
	"net/http"

	"tag_tracker_go/internal/service"
	"tag_tracker_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// TagHandler serves saving, listing, editing and deleting tags.
type TagHandler struct {
	tagService service.TagService
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// SaveTagRequest is the body of POST /save.
// Pointer fields distinguish "not sent" from an empty value.
type SaveTagRequest struct {
	StyleNumber string  `json:"style_number"`
	Description string  `json:"description"`
	PONumber    string  `json:"po_number"`
	ScanDate    *string `json:"scan_date"`
	ReturnDate  *string `json:"return_date"`
	ImageData   *string `json:"image_data"`
	FolderID    *uint   `json:"folder_id"`
	Price       *string `json:"price"`
	Source      *string `json:"source"`
}

// UpdateTagRequest is the body of PUT /api/tag/:id. Omitted or null fields
// keep their stored value.
type UpdateTagRequest struct {
	StyleNumber *string `json:"style_number"`
	Description *string `json:"description"`
	PONumber    *string `json:"po_number"`
	ScanDate    *string `json:"scan_date"`
	ReturnDate  *string `json:"return_date"`
	ImageData   *string `json:"image_data"`
	FolderID    *uint   `json:"folder_id"`
	Price       *string `json:"price"`
	Source      *string `json:"source"`
}

func (h *TagHandler) Save(c *gin.Context) {
	var req SaveTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	view, err := h.tagService.Create(service.SaveTagInput{
		StyleNumber: req.StyleNumber,
		Description: req.Description,
		PONumber:    req.PONumber,
		ScanDate:    req.ScanDate,
		ReturnDate:  req.ReturnDate,
		ImageData:   req.ImageData,
		FolderID:    req.FolderID,
		Price:       req.Price,
		Source:      req.Source,
	})
	if err != nil {
		respondError(c, "TagHandler.Save", err)
		return
	}

	log.Infow("Tag saved", "tag_id", view.ID, "return_date", view.ReturnDate)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Tag saved successfully!",
		"id":          view.ID,
		"return_date": view.ReturnDate,
	})
}

// List returns tags ordered by return date, optionally for one folder.
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(folderFilter(c))
	if err != nil {
		respondError(c, "TagHandler.List", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tags":    tags,
	})
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.Get(id)
	if err != nil {
		respondError(c, "TagHandler.Get", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tag":     tag,
	})
}

// Image writes the stored image bytes with a sniffed content type.
func (h *TagHandler) Image(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	image, err := h.tagService.Image(id)
	if err != nil {
		respondError(c, "TagHandler.Image", err)
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(image), image)
}

func (h *TagHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	tag, err := h.tagService.Update(id, service.TagPatch{
		StyleNumber: req.StyleNumber,
		Description: req.Description,
		PONumber:    req.PONumber,
		ScanDate:    req.ScanDate,
		ReturnDate:  req.ReturnDate,
		ImageData:   req.ImageData,
		FolderID:    req.FolderID,
		Price:       req.Price,
		Source:      req.Source,
	})
	if err != nil {
		respondError(c, "TagHandler.Update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tag updated successfully",
		"tag":     tag,
	})
}

func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.Delete(id); err != nil {
		respondError(c, "TagHandler.Delete", err)
		return
	}

	log.Infow("Tag deleted", "tag_id", id)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tag deleted successfully",
	})
}
