package storage

import (
	"gorm.io/gorm"

	"github.com/junseokho/HackClad-sub000/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetCards() ([]game.CardRecord, error) {
	var cards []game.CardRecord
	if err := r.db.Order("code").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *sqliteRepository) GetCharacters() ([]game.CharacterRecord, error) {
	var chars []game.CharacterRecord
	if err := r.db.Order("code").Find(&chars).Error; err != nil {
		return nil, err
	}
	return chars, nil
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
		} else {
			return err
		}
	}
	u.PlayerName = name
	u.PlayerUUID = uuid
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) UpdateStatsOnMatchEnd(room *game.Room) error {
	if len(room.Ranking) == 0 {
		return nil
	}
	topScore := room.Ranking[0].Score

	upsert := func(uuid, name string, won bool, score int) error {
		var u game.User
		if err := r.db.Where("player_uuid = ?", uuid).First(&u).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				u = game.User{PlayerUUID: uuid, PlayerName: name}
			} else {
				return err
			}
		}
		u.PlayerName = name
		u.GamesPlayed++
		if won {
			u.Wins++
		}
		if score > u.BestScore {
			u.BestScore = score
		}
		return r.db.Save(&u).Error
	}

	for _, row := range room.Ranking {
		if err := upsert(row.UserID, row.Nickname, row.Score == topScore, row.Score); err != nil {
			return err
		}
	}
	return nil
}

// GetTopPlayers returns top N players ordered by Wins desc, then BestScore desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("best_score DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
