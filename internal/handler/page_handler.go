package handler

import (
	"errors"
	"net/http"

	"tag_tracker_go/internal/model"
	"tag_tracker_go/internal/service"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the HTML pages. Templates are registered on the engine
// by the router.
type PageHandler struct {
	folderService service.FolderService
	tagService    service.TagService
}

func NewPageHandler(folderService service.FolderService, tagService service.TagService) *PageHandler {
	return &PageHandler{folderService: folderService, tagService: tagService}
}

// Folders is the home page: the folder picker.
func (h *PageHandler) Folders(c *gin.Context) {
	folders, err := h.folderViews()
	if err != nil {
		respondError(c, "PageHandler.Folders", err)
		return
	}
	c.HTML(http.StatusOK, "folders.html", gin.H{
		"Folders": folders,
	})
}

// Scan renders the scanner bound to one folder.
func (h *PageHandler) Scan(c *gin.Context) {
	id, ok := parsePositiveID(c.Param("folder_id"))
	if !ok {
		c.String(http.StatusNotFound, "Folder not found")
		return
	}

	folder, err := h.folderService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrFolderNotFound) {
			c.String(http.StatusNotFound, "Folder not found")
			return
		}
		respondError(c, "PageHandler.Scan", err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Folder": folder.View(),
	})
}

// Tracker lists tags by return date. An unknown folder_id renders an
// empty list without a current folder.
func (h *PageHandler) Tracker(c *gin.Context) {
	filter := folderFilter(c)

	var current *model.FolderView
	if filter != nil {
		folder, err := h.folderService.Get(*filter)
		switch {
		case err == nil:
			v := folder.View()
			current = &v
		case !errors.Is(err, service.ErrFolderNotFound):
			respondError(c, "PageHandler.Tracker", err)
			return
		}
	}

	tags, err := h.tagService.List(filter)
	if err != nil {
		respondError(c, "PageHandler.Tracker", err)
		return
	}
	folders, err := h.folderViews()
	if err != nil {
		respondError(c, "PageHandler.Tracker", err)
		return
	}

	c.HTML(http.StatusOK, "tracker.html", gin.H{
		"Tags":          tags,
		"Today":         model.FormatDate(h.tagService.Today()),
		"CurrentFolder": current,
		"Folders":       folders,
	})
}

func (h *PageHandler) folderViews() ([]model.FolderView, error) {
	folders, err := h.folderService.List()
	if err != nil {
		return nil, err
	}
	views := make([]model.FolderView, 0, len(folders))
	for i := range folders {
		views = append(views, folders[i].View())
	}
	return views, nil
}
