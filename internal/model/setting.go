package model

type Setting struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Key        string `gorm:"column:key;not null;uniqueIndex" json:"key"`
	Value      string `gorm:"not null" json:"value"`
	UpdateTime int64  `gorm:"not null" json:"updateTime"`
}
