package model

type QuizCategory string

const (
	CategoryReading QuizCategory = "reading"
	CategoryWriting QuizCategory = "writing"
	CategoryMath    QuizCategory = "math"
	CategoryScience QuizCategory = "science"
)

type QuizDifficulty string

const (
	DifficultyEasy   QuizDifficulty = "easy"
	DifficultyMedium QuizDifficulty = "medium"
	DifficultyHard   QuizDifficulty = "hard"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    QuizCategory   `gorm:"type:enum('reading','writing','math','science');not null" json:"category"`
	Difficulty  QuizDifficulty `gorm:"type:enum('easy','medium','hard');not null" json:"difficulty"`
	// TimeLimit is minutes, 0 means unlimited. Informational only, the
	// server never enforces it.
	TimeLimit int   `gorm:"default:0" json:"time_limit"`
	CreatedBy uint  `gorm:"index;type:bigint unsigned;not null" json:"created_by"`
	ClassID   *uint `gorm:"index;type:bigint unsigned" json:"class_id"`
	IsActive  bool  `gorm:"default:true" json:"is_active"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
