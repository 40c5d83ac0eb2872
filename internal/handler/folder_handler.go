package handler

import (
	"net/http"

	"tag_tracker_go/internal/model"
	"tag_tracker_go/internal/service"
	"tag_tracker_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// FolderHandler serves the folder JSON API.
type FolderHandler struct {
	folderService service.FolderService
}

func NewFolderHandler(folderService service.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

// FolderRequest is the body of create and rename.
type FolderRequest struct {
	Name string `json:"name"`
}

func (h *FolderHandler) List(c *gin.Context) {
	folders, err := h.folderService.List()
	if err != nil {
		respondError(c, "FolderHandler.List", err)
		return
	}

	views := make([]model.FolderView, 0, len(folders))
	for i := range folders {
		views = append(views, folders[i].View())
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"folders": views,
	})
}

func (h *FolderHandler) Create(c *gin.Context) {
	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	folder, err := h.folderService.Create(req.Name)
	if err != nil {
		respondError(c, "FolderHandler.Create", err)
		return
	}

	log.Infow("Folder created", "folder_id", folder.ID, "name", folder.Name)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"folder":  folder.View(),
	})
}

func (h *FolderHandler) Rename(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	folder, err := h.folderService.Rename(id, req.Name)
	if err != nil {
		respondError(c, "FolderHandler.Rename", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"folder":  folder.View(),
	})
}

// Delete removes the folder and every tag filed in it.
func (h *FolderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	removed, err := h.folderService.Delete(id)
	if err != nil {
		respondError(c, "FolderHandler.Delete", err)
		return
	}

	log.Infow("Folder deleted", "folder_id", id, "tags_removed", removed)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Folder deleted",
	})
}
