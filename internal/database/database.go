package database

import (
	"starfolk-client/internal/models"

	"github.com/glebarez/sqlite"
	"go.trai.ch/zerr"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the SQLite database at path and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
func Open(path string, verbose bool) (*gorm.DB, error) {
	mode := logger.Silent
	if verbose {
		mode = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(mode),
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "connecting to database"), "path", path)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the character table if it doesn't exist.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Character{}); err != nil {
		return zerr.Wrap(err, "migrating database")
	}
	return nil
}

// Seed inserts the demo characters when the table is empty and reports how many it added.
func Seed(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Character{}).Count(&count).Error; err != nil {
		return 0, zerr.Wrap(err, "counting characters")
	}
	if count > 0 {
		return 0, nil
	}

	characters := SeedCharacters()
	if err := db.Create(&characters).Error; err != nil {
		return 0, zerr.Wrap(err, "seeding characters")
	}
	return len(characters), nil
}

// SeedCharacters is the demo data set.
func SeedCharacters() []models.Character {
	rebel, empire := models.FactionRebel, models.FactionEmpire
	return []models.Character{
		seed("Luke Skywalker", "19BBY", "Jedi Knight and hero of the Rebellion. Son of Anakin Skywalker.", rebel),
		seed("Leia Organa", "19BBY", "Princess, senator, and Rebel leader.", rebel),
		seed("Darth Vader", "41.9BBY", "Former Jedi Knight turned Sith Lord.", empire),
		seed("Han Solo", "29BBY", "Smuggler, pilot of the Millennium Falcon.", rebel),
		seed("Yoda", "896BBY", "Grand Master of the Jedi Order.", rebel),
		seed("Obi-Wan Kenobi", "57BBY", "Jedi Master, mentor to Anakin and Luke.", rebel),
	}
}

func seed(name, birthYear, description, faction string) models.Character {
	return models.Character{
		Name:        name,
		BirthYear:   &birthYear,
		Description: &description,
		Faction:     &faction,
	}
}
