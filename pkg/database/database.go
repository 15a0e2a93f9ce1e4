package database

import (
	"fmt"
	"log"
	"seangkatan_backend/internal/config"
	"seangkatan_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.Event{},
		&model.EventBooking{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizQuestionOption{},
		&model.QuizAttempt{},
		&model.QuizAnswer{},
		&model.Badge{},
		&model.UserBadge{},
		&model.Post{},
		&model.Comment{},
		&model.Album{},
		&model.Photo{},
		&model.ChatRoom{},
		&model.Message{},
		&model.Sticker{},
		&model.UserChatSetting{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedBadges(db)
	seedStickers(db)

	return db, nil
}

// Default badge catalog, inserted once on an empty table.
func seedBadges(db *gorm.DB) {
	var count int64
	db.Model(&model.Badge{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Badge{
		{Name: "First Steps", Description: "Complete your first quiz", Icon: "🎯", Category: "milestone", CriteriaType: model.CriteriaQuizCount, CriteriaValue: 1, IsActive: true},
		{Name: "Quiz Explorer", Description: "Complete 5 quizzes", Icon: "🧭", Category: "milestone", CriteriaType: model.CriteriaQuizCount, CriteriaValue: 5, IsActive: true},
		{Name: "Quiz Master", Description: "Complete 20 quizzes", Icon: "🏆", Category: "milestone", CriteriaType: model.CriteriaQuizCount, CriteriaValue: 20, IsActive: true},
		{Name: "Good Score", Description: "Score 70% or more on a quiz", Icon: "⭐", Category: "performance", CriteriaType: model.CriteriaQuizScore, CriteriaValue: 70, IsActive: true},
		{Name: "Excellent Score", Description: "Score 90% or more on a quiz", Icon: "🌟", Category: "performance", CriteriaType: model.CriteriaQuizScore, CriteriaValue: 90, IsActive: true},
		{Name: "Perfect Score", Description: "Score 100% on a quiz", Icon: "💯", Category: "performance", CriteriaType: model.CriteriaQuizScore, CriteriaValue: 100, IsActive: true},
		{Name: "Reading Star", Description: "Score 80% or more on a reading quiz", Icon: "📖", Category: "subject", CriteriaType: model.CriteriaQuizScore, CriteriaValue: 80, CriteriaCategory: string(model.CategoryReading), IsActive: true},
		{Name: "Math Whiz", Description: "Score 80% or more on a math quiz", Icon: "🔢", Category: "subject", CriteriaType: model.CriteriaQuizScore, CriteriaValue: 80, CriteriaCategory: string(model.CategoryMath), IsActive: true},
	}
	for _, b := range defaults {
		db.Create(&b)
	}
}

// Default sticker pack for the class chat.
func seedStickers(db *gorm.DB) {
	var count int64
	db.Model(&model.Sticker{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Sticker{
		{Name: "Thumbs Up", Category: "reaction", ImageURL: "/stickers/thumbs_up.png", PackName: "default", IsActive: true},
		{Name: "Clap", Category: "reaction", ImageURL: "/stickers/clap.png", PackName: "default", IsActive: true},
		{Name: "Heart", Category: "reaction", ImageURL: "/stickers/heart.png", PackName: "default", IsActive: true},
		{Name: "Star", Category: "praise", ImageURL: "/stickers/star.png", PackName: "default", IsActive: true},
		{Name: "Great Job", Category: "praise", ImageURL: "/stickers/great_job.png", PackName: "default", IsActive: true},
		{Name: "Thinking", Category: "emotion", ImageURL: "/stickers/thinking.png", PackName: "default", IsActive: true},
		{Name: "Laugh", Category: "emotion", ImageURL: "/stickers/laugh.png", PackName: "default", IsActive: true},
	}
	for _, s := range defaults {
		db.Create(&s)
	}
}
