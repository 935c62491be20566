package models

import "gorm.io/gorm"

// QuestionGroup is a named, per-account collection of questions (a subject).
// Title is unique per owning account, case-sensitive.
type QuestionGroup struct {
	gorm.Model
	UserID  uint   `gorm:"index:idx_group_owner_title,unique;not null" json:"-"`
	GroupNo uint   `gorm:"not null" json:"id"`
	Title   string `gorm:"index:idx_group_owner_title,unique;not null" json:"title"`
	// NextQuestionSeq is a monotonic counter for per-group question numbering.
	NextQuestionSeq uint       `gorm:"default:0" json:"-"`
	Questions       []Question `gorm:"foreignKey:GroupID" json:"questions"`
}

// Question is immutable once created; it only goes away with its owner.
type Question struct {
	gorm.Model
	GroupID    uint           `gorm:"index;not null" json:"-"`
	QuestionNo uint           `gorm:"not null" json:"id"`
	Text       string         `gorm:"not null" json:"text"`
	ImagePath  string         `gorm:"default:''" json:"image,omitempty"`
	Answers    []AnswerOption `gorm:"foreignKey:QuestionID" json:"answers"`
}

// AnswerOption is one of exactly four options per question. Exactly one
// option per question carries IsCorrect, fixed at creation time.
type AnswerOption struct {
	gorm.Model
	QuestionID uint   `gorm:"index;not null" json:"-"`
	Text       string `json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"is_correct"`
	OrderIndex int    `gorm:"default:0" json:"-"`
}
