package service

import (
	"errors"
	"strings"
	"tag_tracker_go/internal/model"
	"tag_tracker_go/internal/repository"

	"gorm.io/gorm"
)

// maxFolderNameLength matches the folders.name column width.
const maxFolderNameLength = 200

// FolderService owns folder naming rules and the cascade on delete.
type FolderService interface {
	Create(name string) (*model.Folder, error)
	Rename(id uint, name string) (*model.Folder, error)
	// Delete removes the folder together with its tags and reports how many
	// tags went with it.
	Delete(id uint) (int64, error)
	List() ([]model.Folder, error)
	Get(id uint) (*model.Folder, error)
}

type folderService struct {
	folderRepo repository.FolderRepository
}

func NewFolderService(folderRepo repository.FolderRepository) FolderService {
	return &folderService{folderRepo: folderRepo}
}

// Create adds a folder.
// Rules:
// 1. The name is trimmed and must not be empty.
// 2. Names are unique, compared exactly (case-sensitive).
func (s *folderService) Create(name string) (*model.Folder, error) {
	name, err := normalizeFolderName(name)
	if err != nil {
		return nil, err
	}

	folder := &model.Folder{Name: name}
	if err := s.folderRepo.Create(folder); err != nil {
		if errors.Is(err, repository.ErrFolderNameTaken) {
			return nil, ErrFolderAlreadyExists
		}
		return nil, err
	}
	return folder, nil
}

// Rename applies the Create rules; the folder's own current name does not
// count as a duplicate.
func (s *folderService) Rename(id uint, name string) (*model.Folder, error) {
	name, err := normalizeFolderName(name)
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.Rename(id, name)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrFolderNotFound
		case errors.Is(err, repository.ErrFolderNameTaken):
			return nil, ErrFolderAlreadyExists
		default:
			return nil, err
		}
	}
	return folder, nil
}

func (s *folderService) Delete(id uint) (int64, error) {
	n, err := s.folderRepo.DeleteWithTags(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrFolderNotFound
		}
		return 0, err
	}
	return n, nil
}

func (s *folderService) List() ([]model.Folder, error) {
	folders, err := s.folderRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []model.Folder{}
	}
	return folders, nil
}

func (s *folderService) Get(id uint) (*model.Folder, error) {
	folder, err := s.folderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return folder, nil
}

func normalizeFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidInput("Folder name is required")
	}
	if len([]rune(name)) > maxFolderNameLength {
		return "", invalidInput("Folder name must be at most %d characters", maxFolderNameLength)
	}
	return name, nil
}
