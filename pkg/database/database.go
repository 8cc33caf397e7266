package database

import (
	"fmt"
	"log"
	"numiviz_backend/internal/config"
	"numiviz_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// En release les migrations ne tournent que sur demande explicite
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		seed(db)
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Module{},
		&model.Lesson{},
		&model.Exercise{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.ScoreQuiz{},
		&model.Progression{},
		&model.CalendarEvent{},
		&model.LinearSystemHistory{},
	)
}

// seed comptes et données de démarrage, uniquement sur base vide
func seed(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return
	}

	hash := func(pw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		return string(h)
	}

	admin := &model.User{
		Nom:      "Administrateur",
		Email:    "admin@numiviz.local",
		Password: hash("ChangeMe!2024"),
		Role:     model.Admin,
		Actif:    true,
	}
	prof := &model.User{
		Nom:      "Professeur Démo",
		Email:    "prof@numiviz.local",
		Password: hash("ChangeMe!2024"),
		Role:     model.Professeur,
		Actif:    true,
	}
	db.Create(admin)
	db.Create(prof)

	demoModule := &model.Module{
		Titre:        "Résolution de systèmes linéaires",
		Description:  "Élimination de Gauss, décomposition LU et méthodes itératives.",
		Niveau:       "L2",
		Duree:        240,
		Ordre:        1,
		IDEnseignant: prof.ID,
		Actif:        true,
	}
	db.Create(demoModule)

	log.Println("Seed data inserted")
}
