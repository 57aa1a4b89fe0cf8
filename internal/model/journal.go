package model

type Journal struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Content    string `gorm:"not null" json:"content"`
	Date       string `gorm:"not null;uniqueIndex" json:"date"`
	CreateTime int64  `gorm:"not null" json:"createTime"`
	UpdateTime int64  `gorm:"not null" json:"updateTime"`
}
