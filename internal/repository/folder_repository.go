package repository

import (
	"errors"
	"fmt"
	"tag_tracker_go/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrFolderNameTaken means another folder already uses the name.
	ErrFolderNameTaken = errors.New("folder name already taken")
	// ErrFolderNotFound is returned when a tag references a folder that does not exist.
	ErrFolderNotFound = errors.New("folder not found")
)

// folderWithCount selects every folder column plus the live number of tags in it.
const folderWithCount = "folders.*, (SELECT COUNT(*) FROM tags WHERE tags.folder_id = folders.id) AS tag_count"

// FolderRepository persists folders.
// Every mutation runs in its own transaction; the UNIQUE index on name is
// authoritative, the in-transaction lookup only avoids a round trip to a
// constraint error in the common case.
type FolderRepository interface {
	Create(folder *model.Folder) error
	FindAll() ([]model.Folder, error)
	FindByID(id uint) (*model.Folder, error)
	// Rename returns gorm.ErrRecordNotFound if the folder is gone and
	// ErrFolderNameTaken if a different folder owns name.
	Rename(id uint, name string) (*model.Folder, error)
	// DeleteWithTags removes the folder's tags and then the folder, atomically.
	DeleteWithTags(id uint) (deletedTags int64, err error)
}

type folderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(folder *model.Folder) error {
	if folder == nil {
		return fmt.Errorf("folder is nil")
	}
	if folder.Name == "" {
		return fmt.Errorf("folder name is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Folder{}).Where("name = ?", folder.Name).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrFolderNameTaken
		}
		if err := tx.Create(folder).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrFolderNameTaken
			}
			return err
		}
		return nil
	})
}

func (r *folderRepository) FindAll() ([]model.Folder, error) {
	var folders []model.Folder
	if err := r.db.Model(&model.Folder{}).
		Select(folderWithCount).
		Order("folders.name ASC").
		Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *folderRepository) FindByID(id uint) (*model.Folder, error) {
	return findFolder(r.db, id)
}

func (r *folderRepository) Rename(id uint, name string) (*model.Folder, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	var renamed *model.Folder
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current model.Folder
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&model.Folder{}).
			Where("name = ? AND id <> ?", name, id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrFolderNameTaken
		}

		if err := tx.Model(&model.Folder{}).Where("id = ?", id).Update("name", name).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrFolderNameTaken
			}
			return err
		}

		f, err := findFolder(tx, id)
		if err != nil {
			return err
		}
		renamed = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

func (r *folderRepository) DeleteWithTags(id uint) (int64, error) {
	var deletedTags int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current model.Folder
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		res := tx.Where("folder_id = ?", id).Delete(&model.Tag{})
		if res.Error != nil {
			return res.Error
		}
		deletedTags = res.RowsAffected

		res = tx.Where("id = ?", id).Delete(&model.Folder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedTags, nil
}

func findFolder(db *gorm.DB, id uint) (*model.Folder, error) {
	var folder model.Folder
	if err := db.Model(&model.Folder{}).
		Select(folderWithCount).
		Where("folders.id = ?", id).
		Take(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}
