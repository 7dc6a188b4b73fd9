package dto

// SubmitAnswerDTO is the request body for answering one question of an
// in-progress attempt. Letters are normalized to upper case before judging.
type SubmitAnswerDTO struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedLetter string `json:"selected_letter" binding:"required"`
}

// HistoryQueryDTO carries the pagination of the attempt history listing.
type HistoryQueryDTO struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// QuestionListQueryDTO carries the pagination of the question pool listing.
type QuestionListQueryDTO struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
