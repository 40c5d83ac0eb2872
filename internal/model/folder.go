package model

import "time"

// Folder groups tags, e.g. by season or batch.
type Folder struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// TagCount is filled by queries that select it; it has no column.
	TagCount int64 `gorm:"->;-:migration" json:"tag_count"`
}

// TableName pins the table name used by GORM.
func (Folder) TableName() string {
	return "folders"
}

// FolderView is the JSON shape of a folder.
type FolderView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	TagCount  int64  `json:"tag_count"`
}

func (f *Folder) View() FolderView {
	return FolderView{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: formatTimestamp(f.CreatedAt),
		TagCount:  f.TagCount,
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
