package model

type DocumentSequence struct {
	Prefix  string `gorm:"type:varchar(10);primaryKey"`
	Year    int    `gorm:"primaryKey"`
	Counter int64  `gorm:"not null;default:0"`
}

func (DocumentSequence) TableName() string {
	return "document_sequences"
}
