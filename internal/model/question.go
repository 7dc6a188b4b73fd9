package model

import (
	"time"

	"gorm.io/gorm"
)

// Question is a multiple-choice item in the simulado pool. CorrectLetter is
// the sole ground truth for scoring; the attempt subsystem only ever reads it.
type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Prompt        string         `json:"prompt" gorm:"type:text;not null"`
	OptionA       string         `json:"option_a" gorm:"type:text;not null"`
	OptionB       string         `json:"option_b" gorm:"type:text;not null"`
	OptionC       string         `json:"option_c" gorm:"type:text;not null"`
	OptionD       string         `json:"option_d" gorm:"type:text;not null"`
	CorrectLetter string         `json:"correct_letter" gorm:"type:varchar(1);not null"` // "A".."D"
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
