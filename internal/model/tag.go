package model

import (
	"fmt"
	"time"
)

// Tag is one scanned garment label and its return-tracking metadata.
// ScanDate and ReturnDate are civil dates stored at UTC midnight.
type Tag struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	StyleNumber string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:varchar(500);not null"`
	PONumber    string    `gorm:"column:po_number;type:varchar(200);not null"`
	ScanDate    time.Time `gorm:"type:date;not null"`
	ReturnDate  time.Time `gorm:"type:date;not null;index"`
	RawText     string    `gorm:"type:text"`
	ImageData   []byte
	FolderID    *uint     `gorm:"index"`
	Folder      *Folder   `gorm:"foreignKey:FolderID"`
	Price       *string   `gorm:"type:varchar(20)"`
	Source      *string   `gorm:"type:varchar(50)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	// HasImage is filled by list queries that skip loading ImageData.
	HasImage bool `gorm:"->;-:migration"`
}

// TableName pins the table name used by GORM.
func (Tag) TableName() string {
	return "tags"
}

// FormatRawText renders the three extracted fields in the fixed audit layout.
func FormatRawText(styleNumber, description, poNumber string) string {
	return fmt.Sprintf("Style Number: %s\nDescription: %s\nPO Number: %s", styleNumber, description, poNumber)
}

// SyncRawText regenerates RawText from the current field values.
func (t *Tag) SyncRawText() {
	t.RawText = FormatRawText(t.StyleNumber, t.Description, t.PONumber)
}

// DaysUntilDue is negative when the tag is overdue relative to today.
func (t *Tag) DaysUntilDue(today time.Time) int {
	return DaysBetween(today, t.ReturnDate)
}

// TagView is the JSON shape of a tag. The image bytes are served separately.
type TagView struct {
	ID           uint    `json:"id"`
	StyleNumber  string  `json:"style_number"`
	Description  string  `json:"description"`
	PONumber     string  `json:"po_number"`
	ScanDate     string  `json:"scan_date"`
	ReturnDate   string  `json:"return_date"`
	DaysUntilDue int     `json:"days_until_due"`
	FolderID     *uint   `json:"folder_id"`
	FolderName   *string `json:"folder_name"`
	RawText      string  `json:"raw_text"`
	Price        *string `json:"price"`
	Source       *string `json:"source"`
	HasImage     bool    `json:"has_image"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// View maps the tag to its transport form, computing days_until_due against today.
func (t *Tag) View(today time.Time) TagView {
	v := TagView{
		ID:           t.ID,
		StyleNumber:  t.StyleNumber,
		Description:  t.Description,
		PONumber:     t.PONumber,
		ScanDate:     FormatDate(t.ScanDate),
		ReturnDate:   FormatDate(t.ReturnDate),
		DaysUntilDue: t.DaysUntilDue(today),
		FolderID:     t.FolderID,
		RawText:      t.RawText,
		Price:        t.Price,
		Source:       t.Source,
		HasImage:     t.HasImage || len(t.ImageData) > 0,
		CreatedAt:    formatTimestamp(t.CreatedAt),
		UpdatedAt:    formatTimestamp(t.UpdatedAt),
	}
	if t.Folder != nil {
		name := t.Folder.Name
		v.FolderName = &name
	}
	return v
}
