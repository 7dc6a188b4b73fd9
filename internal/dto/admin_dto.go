package dto

import "time"

// QuestionCreateDTO is the admin request for adding a question to the pool.
type QuestionCreateDTO struct {
	Prompt        string `json:"prompt" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectLetter string `json:"correct_letter" binding:"required,oneof=A B C D"`
}

// QuestionUpdateDTO is the admin request for editing a question. All fields
// are required; partial updates go through the full representation.
type QuestionUpdateDTO struct {
	Prompt        string `json:"prompt" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectLetter string `json:"correct_letter" binding:"required,oneof=A B C D"`
}

// QuestionAdminDTO is the back-office view of a question, answer key included.
type QuestionAdminDTO struct {
	ID            uint      `json:"id"`
	Prompt        string    `json:"prompt"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectLetter string    `json:"correct_letter"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
