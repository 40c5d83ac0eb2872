package model

import (
	"fmt"
	"time"
)

// ColorFormula is a paint/dye recipe loaded by the offline seeding tool.
type ColorFormula struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ColorName   string    `gorm:"type:varchar(200);not null" json:"color_name"`
	ColorNumber string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"color_number"`
	Formula     string    `gorm:"type:text" json:"formula"`
	RawText     string    `gorm:"type:text" json:"raw_text"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName pins the table name used by GORM.
func (ColorFormula) TableName() string {
	return "color_formulas"
}

func FormatColorRawText(colorName, colorNumber, formula string) string {
	return fmt.Sprintf("Color Name: %s\nColor Number: %s\nFormula: %s", colorName, colorNumber, formula)
}
