package repository

import (
	"fmt"
	"tag_tracker_go/internal/model"

	"gorm.io/gorm"
)

// tagListColumns is every tag column except the image blob, which list
// views never need; has_image reports whether one is stored.
const tagListColumns = "tags.id, tags.style_number, tags.description, tags.po_number, " +
	"tags.scan_date, tags.return_date, tags.raw_text, tags.folder_id, tags.price, tags.source, " +
	"tags.created_at, tags.updated_at, (tags.image_data IS NOT NULL AND LENGTH(tags.image_data) > 0) AS has_image"

// TagRepository persists tags.
type TagRepository interface {
	// Create inserts tag; a non-nil FolderID must reference an existing
	// folder or ErrFolderNotFound is returned.
	Create(tag *model.Tag) error
	// FindAll lists tags soonest-due first, optionally limited to one folder.
	// ImageData is not loaded; HasImage is set instead.
	FindAll(folderID *uint) ([]model.Tag, error)
	FindByID(id uint) (*model.Tag, error)
	// Update loads the tag, applies mutate and saves the result in one
	// transaction. An error from mutate rolls the transaction back.
	Update(id uint, mutate func(tag *model.Tag) error) (*model.Tag, error)
	Delete(id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureFolderExists(tx, tag.FolderID); err != nil {
			return err
		}
		return tx.Omit("Folder").Create(tag).Error
	})
}

func (r *tagRepository) FindAll(folderID *uint) ([]model.Tag, error) {
	tx := r.db.Model(&model.Tag{}).
		Select(tagListColumns).
		Preload("Folder")
	if folderID != nil {
		tx = tx.Where("tags.folder_id = ?", *folderID)
	}

	var tags []model.Tag
	if err := tx.Order("tags.return_date ASC").Order("tags.id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Preload("Folder").Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Update(id uint, mutate func(tag *model.Tag) error) (*model.Tag, error) {
	if mutate == nil {
		return nil, fmt.Errorf("mutate func is nil")
	}

	var updated model.Tag
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&updated).Error; err != nil {
			return err
		}
		if err := mutate(&updated); err != nil {
			return err
		}
		// The mutation may point the tag at another folder.
		updated.Folder = nil
		if err := ensureFolderExists(tx, updated.FolderID); err != nil {
			return err
		}
		if err := tx.Omit("Folder").Save(&updated).Error; err != nil {
			return err
		}

		if updated.FolderID != nil {
			var folder model.Folder
			if err := tx.Where("id = ?", *updated.FolderID).First(&folder).Error; err != nil {
				return err
			}
			updated.Folder = &folder
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *tagRepository) Delete(id uint) error {
	res := r.db.Where("id = ?", id).Delete(&model.Tag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func ensureFolderExists(tx *gorm.DB, folderID *uint) error {
	if folderID == nil {
		return nil
	}
	var n int64
	if err := tx.Model(&model.Folder{}).Where("id = ?", *folderID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrFolderNotFound
	}
	return nil
}
