package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"tag_tracker_go/internal/model"
	"tag_tracker_go/internal/service"
	"tag_tracker_go/web"

	"github.com/gin-gonic/gin"
)

func newPageRouter(t *testing.T, h *PageHandler) *gin.Engine {
	t.Helper()
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("web.Templates() error = %v", err)
	}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/", h.Folders)
	r.GET("/scan/:folder_id", h.Scan)
	r.GET("/tracker", h.Tracker)
	return r
}

func TestPageHandler_Scan(t *testing.T) {
	folders := &fakeFolderService{
		getFn: func(id uint) (*model.Folder, error) {
			if id == 1 {
				return &model.Folder{ID: 1, Name: "Fall"}, nil
			}
			return nil, service.ErrFolderNotFound
		},
	}
	r := newPageRouter(t, NewPageHandler(folders, &fakeTagService{}))

	w := doReq(r, http.MethodGet, "/scan/1", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Scan into Fall") {
		t.Fatalf("expect scanner page, got %d %s", w.Code, w.Body.String())
	}
	for _, path := range []string{"/scan/2", "/scan/zero"} {
		if w := doReq(r, http.MethodGet, path, ""); w.Code != http.StatusNotFound {
			t.Fatalf("%s: expect 404, got %d", path, w.Code)
		}
	}
}

func TestPageHandler_Tracker(t *testing.T) {
	name := "Fall"
	fid := uint(1)
	folders := &fakeFolderService{
		getFn: func(id uint) (*model.Folder, error) {
			return &model.Folder{ID: id, Name: name}, nil
		},
		listFn: func() ([]model.Folder, error) {
			return []model.Folder{{ID: 1, Name: name}}, nil
		},
	}
	tags := &fakeTagService{
		today: time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
		listFn: func(folderID *uint) ([]model.TagView, error) {
			if folderID == nil || *folderID != 1 {
				t.Fatalf("expect folder filter 1")
			}
			return []model.TagView{{
				ID: 1, StyleNumber: "ZX-9", ReturnDate: "2024-09-14", DaysUntilDue: -1,
				FolderID: &fid, FolderName: &name,
			}}, nil
		},
	}
	r := newPageRouter(t, NewPageHandler(folders, tags))

	w := doReq(r, http.MethodGet, "/tracker?folder_id=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"ZX-9", "Today is 2024-09-15", `class="overdue"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expect %q in page, got %s", want, body)
		}
	}
}

func TestPageHandler_Folders_StorageFailure(t *testing.T) {
	folders := &fakeFolderService{
		listFn: func() ([]model.Folder, error) { return nil, errors.New("boom") },
	}
	r := newPageRouter(t, NewPageHandler(folders, &fakeTagService{}))

	if w := doReq(r, http.MethodGet, "/", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expect 500, got %d", w.Code)
	}
}
