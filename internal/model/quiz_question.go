package model

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionFillBlank      QuestionType = "fill_blank"
)

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID   uint         `gorm:"index;type:bigint unsigned;not null" json:"quiz_id"`
	Question string       `gorm:"type:text;not null" json:"question"`
	Type     QuestionType `gorm:"type:enum('multiple_choice','true_false','fill_blank');not null" json:"type"`
	// CorrectAnswer is never serialized; students must not see it.
	CorrectAnswer string `gorm:"type:text;not null" json:"-"`
	Points        int    `gorm:"default:1" json:"points"`
	Explanation   string `gorm:"type:text" json:"explanation"`
	Order         int    `gorm:"column:question_order;default:1" json:"order"`
	CreatedBy     *uint  `gorm:"type:bigint unsigned" json:"created_by"`

	Options []QuizQuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// swagger:model QuizQuestionOption
type QuizQuestionOption struct {
	BaseModel
	QuestionID  uint   `gorm:"index;type:bigint unsigned;not null" json:"question_id"`
	OptionText  string `gorm:"size:500;not null" json:"option_text"`
	OptionOrder int    `gorm:"not null" json:"option_order"`
}

func (QuizQuestionOption) TableName() string {
	return "quiz_question_options"
}
