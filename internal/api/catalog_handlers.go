package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/junseokho/HackClad-sub000/internal/constants"
	"github.com/junseokho/HackClad-sub000/internal/game"
	"github.com/junseokho/HackClad-sub000/internal/storage"
)

// CatalogHandler serves card and character listings. Database rows anchor
// identity; all gameplay numbers are overlaid from the config catalog so the
// config file stays the single source of truth.
type CatalogHandler struct {
	repo storage.Repository
	cat  *game.Catalog
}

func NewCatalogHandler(repo storage.Repository, cat *game.Catalog) *CatalogHandler {
	return &CatalogHandler{repo: repo, cat: cat}
}

type cardView struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Cost          int    `json:"cost"`
	EffectType    string `json:"effect_type"`
	Attack        int    `json:"attack"`
	Guard         int    `json:"guard"`
	Move          int    `json:"move"`
	VictoryPoints int    `json:"victory_points"`
	Enhanced      bool   `json:"enhanced"`
	Notes         string `json:"notes,omitempty"`
}

func (h *CatalogHandler) GetCards(c *gin.Context) {
	rows, err := h.repo.GetCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	out := make([]cardView, 0, len(rows))
	for _, row := range rows {
		def := h.cat.Card(row.Code)
		out = append(out, cardView{
			Code:          def.Code,
			Name:          def.Name,
			Cost:          def.Cost,
			EffectType:    string(def.EffectType),
			Attack:        def.Attack,
			Guard:         def.Guard,
			Move:          def.Move,
			VictoryPoints: def.VictoryPoints,
			Enhanced:      def.Enhanced,
			Notes:         def.Notes,
		})
	}
	c.JSON(http.StatusOK, out)
}

type characterView struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CrackName string `json:"crack_name"`
	CrackCost int    `json:"crack_cost"`
	Notes     string `json:"notes,omitempty"`
}

func (h *CatalogHandler) GetCharacters(c *gin.Context) {
	rows, err := h.repo.GetCharacters()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCharacters})
		return
	}
	out := make([]characterView, 0, len(rows))
	for _, row := range rows {
		def, ok := h.cat.Characters[row.Code]
		if !ok {
			continue
		}
		out = append(out, characterView{
			Code:      def.Code,
			Name:      def.Name,
			CrackName: def.CrackName,
			CrackCost: def.CrackCost,
			Notes:     def.Notes,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) GetLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	users, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	type row struct {
		Name        string `json:"name"`
		GamesPlayed int    `json:"games_played"`
		Wins        int    `json:"wins"`
		BestScore   int    `json:"best_score"`
	}
	out := make([]row, 0, len(users))
	for _, u := range users {
		out = append(out, row{Name: u.PlayerName, GamesPlayed: u.GamesPlayed, Wins: u.Wins, BestScore: u.BestScore})
	}
	c.JSON(http.StatusOK, out)
}

// GetPlayerStats returns the authenticated player's aggregate stats.
func (h *CatalogHandler) GetPlayerStats(c *gin.Context) {
	email, _, _ := sessionIdentity(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	u, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":         u.PlayerName,
		"uuid":         u.PlayerUUID,
		"games_played": u.GamesPlayed,
		"wins":         u.Wins,
		"best_score":   u.BestScore,
	})
}

type updateNameRequest struct {
	Name string `json:"name"`
}

// UpdatePlayerName lets the session user change their display name.
func (h *CatalogHandler) UpdatePlayerName(c *gin.Context) {
	email, _, uuid := sessionIdentity(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.repo.UpsertUser(email, uuid, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "name updated"})
}
