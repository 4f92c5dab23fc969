package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/junseokho/HackClad-sub000/internal/game"
)

func OpenAndMigrate(dataSourceName string, cat *game.Catalog) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Schema is kept current via AutoMigrate; gameplay stats are never
	// persisted here, only identity rows and player profiles.
	err = db.AutoMigrate(&game.User{}, &game.CardRecord{}, &game.CharacterRecord{})
	if err != nil {
		return nil, err
	}

	seedCatalog(db, cat)
	return db, nil
}

// seedCatalog inserts catalog identity rows on first boot. Existing rows are
// left alone because the config file is the source of truth for everything
// beyond code and name.
func seedCatalog(db *gorm.DB, cat *game.Catalog) {
	var count int64
	db.Model(&game.CardRecord{}).Count(&count)
	if count == 0 {
		rows := make([]game.CardRecord, 0, len(cat.Cards))
		for _, c := range cat.Cards {
			rows = append(rows, game.CardRecord{Code: c.Code, Name: c.Name, Enhanced: c.Enhanced})
		}
		if len(rows) > 0 {
			db.Create(&rows)
		}
	}

	count = 0
	db.Model(&game.CharacterRecord{}).Count(&count)
	if count == 0 {
		rows := make([]game.CharacterRecord, 0, len(cat.Characters))
		for _, c := range cat.Characters {
			rows = append(rows, game.CharacterRecord{Code: c.Code, Name: c.Name})
		}
		if len(rows) > 0 {
			db.Create(&rows)
		}
	}
}
