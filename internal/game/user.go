package game

import "gorm.io/gorm"

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID  string `gorm:"index"`
	PlayerName  string
	Email       string `gorm:"uniqueIndex"`
	GamesPlayed int
	Wins        int
	BestScore   int
}

// Unify global users table name as "player_profiles"
func (User) TableName() string { return "player_profiles" }

// CardRecord persists one catalog card row. Stats are always overridden
// from the config file at load time; the row only anchors identity.
type CardRecord struct {
	gorm.Model
	Code string `gorm:"uniqueIndex" json:"code"`
	Name string `json:"name"`
	// Enhanced marks cards only obtainable via the pre-draft pick.
	Enhanced bool `json:"enhanced"`
}

func (CardRecord) TableName() string { return "card_catalog" }

// CharacterRecord persists one playable character row.
type CharacterRecord struct {
	gorm.Model
	Code string `gorm:"uniqueIndex" json:"code"`
	Name string `json:"name"`
}

func (CharacterRecord) TableName() string { return "character_catalog" }
