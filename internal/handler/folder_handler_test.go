package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"tag_tracker_go/internal/model"
	"tag_tracker_go/internal/service"

	"github.com/gin-gonic/gin"
)

type fakeFolderService struct {
	createFn func(name string) (*model.Folder, error)
	renameFn func(id uint, name string) (*model.Folder, error)
	deleteFn func(id uint) (int64, error)
	listFn   func() ([]model.Folder, error)
	getFn    func(id uint) (*model.Folder, error)
}

func (f *fakeFolderService) Create(name string) (*model.Folder, error) {
	if f.createFn != nil {
		return f.createFn(name)
	}
	return nil, nil
}

func (f *fakeFolderService) Rename(id uint, name string) (*model.Folder, error) {
	if f.renameFn != nil {
		return f.renameFn(id, name)
	}
	return nil, nil
}

func (f *fakeFolderService) Delete(id uint) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return 0, nil
}

func (f *fakeFolderService) List() ([]model.Folder, error) {
	if f.listFn != nil {
		return f.listFn()
	}
	return []model.Folder{}, nil
}

func (f *fakeFolderService) Get(id uint) (*model.Folder, error) {
	if f.getFn != nil {
		return f.getFn(id)
	}
	return nil, service.ErrFolderNotFound
}

func newFolderRouter(h *FolderHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/folders", h.List)
	r.POST("/api/folders", h.Create)
	r.PUT("/api/folders/:id", h.Rename)
	r.DELETE("/api/folders/:id", h.Delete)
	return r
}

func TestFolderHandler_Create_Success(t *testing.T) {
	created := time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC)
	svc := &fakeFolderService{
		createFn: func(name string) (*model.Folder, error) {
			if name != "Fall 2024" {
				t.Fatalf("unexpected name: %q", name)
			}
			return &model.Folder{ID: 3, Name: name, CreatedAt: created}, nil
		},
	}
	r := newFolderRouter(NewFolderHandler(svc))

	w := doReq(r, http.MethodPost, "/api/folders", `{"name":"Fall 2024"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool             `json:"success"`
		Folder  model.FolderView `json:"folder"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.Folder.ID != 3 || resp.Folder.CreatedAt != "2024-09-01T08:30:00Z" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestFolderHandler_Create_Duplicate(t *testing.T) {
	svc := &fakeFolderService{
		createFn: func(name string) (*model.Folder, error) {
			return nil, service.ErrFolderAlreadyExists
		},
	}
	r := newFolderRouter(NewFolderHandler(svc))

	w := doReq(r, http.MethodPost, "/api/folders", `{"name":"Fall"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expect 400, got %d", w.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["success"] != false || resp["error"] != "A folder with that name already exists" || resp["kind"] != "validation" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestFolderHandler_Create_MalformedBody(t *testing.T) {
	called := false
	svc := &fakeFolderService{
		createFn: func(name string) (*model.Folder, error) {
			called = true
			return nil, nil
		},
	}
	r := newFolderRouter(NewFolderHandler(svc))

	w := doReq(r, http.MethodPost, "/api/folders", `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expect 400, got %d", w.Code)
	}
	if called {
		t.Fatalf("service should not be called on a malformed body")
	}
}

func TestFolderHandler_List(t *testing.T) {
	svc := &fakeFolderService{
		listFn: func() ([]model.Folder, error) {
			return []model.Folder{{ID: 1, Name: "A", TagCount: 4}, {ID: 2, Name: "B"}}, nil
		},
	}
	r := newFolderRouter(NewFolderHandler(svc))

	w := doReq(r, http.MethodGet, "/api/folders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d", w.Code)
	}
	var resp struct {
		Folders []model.FolderView `json:"folders"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Folders) != 2 || resp.Folders[0].TagCount != 4 {
		t.Fatalf("unexpected folders: %+v", resp.Folders)
	}
}

func TestFolderHandler_List_StorageFailure(t *testing.T) {
	svc := &fakeFolderService{
		listFn: func() ([]model.Folder, error) {
			return nil, errors.New("database is locked")
		},
	}
	r := newFolderRouter(NewFolderHandler(svc))

	w := doReq(r, http.MethodGet, "/api/folders", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expect 500, got %d", w.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["kind"] != "storage_failure" || resp["error"] != "database is locked" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestFolderHandler_Rename(t *testing.T) {
	svc := &fakeFolderService{
		renameFn: func(id uint, name string) (*model.Folder, error) {
			if id != 7 {
				return nil, service.ErrFolderNotFound
			}
			return &model.Folder{ID: id, Name: name}, nil
		},
	}
	r := newFolderRouter(NewFolderHandler(svc))

	if w := doReq(r, http.MethodPut, "/api/folders/7", `{"name":"Winter"}`); w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d", w.Code)
	}
	if w := doReq(r, http.MethodPut, "/api/folders/8", `{"name":"Winter"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expect 404, got %d", w.Code)
	}
	if w := doReq(r, http.MethodPut, "/api/folders/x", `{"name":"Winter"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expect 404 for a non-numeric id, got %d", w.Code)
	}
}

func TestFolderHandler_Delete(t *testing.T) {
	var deleted uint
	svc := &fakeFolderService{
		deleteFn: func(id uint) (int64, error) {
			if id == 99 {
				return 0, service.ErrFolderNotFound
			}
			deleted = id
			return 2, nil
		},
	}
	r := newFolderRouter(NewFolderHandler(svc))

	w := doReq(r, http.MethodDelete, "/api/folders/5", "")
	if w.Code != http.StatusOK || deleted != 5 {
		t.Fatalf("expect 200 and folder 5 deleted, got %d / %d", w.Code, deleted)
	}
	if w := doReq(r, http.MethodDelete, "/api/folders/99", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expect 404, got %d", w.Code)
	}
}
