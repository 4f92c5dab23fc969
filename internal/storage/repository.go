package storage

import (
	"github.com/junseokho/HackClad-sub000/internal/game"
)

type Repository interface {
	// Catalog listings. Rows anchor identity; gameplay stats come from the
	// config catalog, never from the database.
	GetCards() ([]game.CardRecord, error)
	GetCharacters() ([]game.CharacterRecord, error)

	UpsertUser(email, uuid, name string) error
	SaveUser(u *game.User) error
	GetStatsByEmail(email string) (*game.User, error)

	// UpdateStatsOnMatchEnd credits one played match to every participant,
	// a win to the top-ranked player(s) and refreshes best scores.
	UpdateStatsOnMatchEnd(r *game.Room) error

	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)
}
