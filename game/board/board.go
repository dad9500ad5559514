// Package board generates 5x5 word boards from a board set file and tracks
// which cards have been revealed.
package board

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/codewords-game/codewords/game"
)

// Size is the width and height of every board.
const Size = 5

type (
	// Tile is the hidden color of a single cell.
	Tile string

	// WordMap is the 5x5 word grid shown to every player.
	WordMap [Size][Size]string

	// TileMap is a curated 5x5 color layout.  Each map has exactly one
	// death tile, nine tiles for the starting team, and eight for the
	// other.
	TileMap [Size][Size]Tile

	// CardMap tracks which cells have been revealed.
	CardMap [Size][Size]bool

	// BoardSet is the data file loaded at startup: a word list per
	// language and a list of curated tile maps.  It is shared read-only
	// by every room.
	BoardSet struct {
		Words map[string][]string `json:"words"`
		Tiles []TileMap           `json:"tiles"`
	}

	// Board is a dealt game board.  Words and Tiles do not change for the
	// lifetime of a game; Cards is the reveal bitmap.
	Board struct {
		Words WordMap
		Tiles TileMap
		Cards CardMap
	}
)

const (
	// TileNeutral is a bystander cell.
	TileNeutral Tile = "neutral"
	// TileBlue is a blue team cell.
	TileBlue Tile = "blue"
	// TileRed is a red team cell.
	TileRed Tile = "red"
	// TileDeath is the cell that immediately ends the game.
	TileDeath Tile = "death"
)

// Team returns the team a tile belongs to, if any.
func (t Tile) Team() (game.Team, bool) {
	switch t {
	case TileBlue:
		return game.TeamBlue, true
	case TileRed:
		return game.TeamRed, true
	}
	return "", false
}

// LoadBoardSet reads and validates the board set file at path.
func LoadBoardSet(path string) (*BoardSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading board file: %w", err)
	}
	var bs BoardSet
	if err := json.Unmarshal(b, &bs); err != nil {
		return nil, fmt.Errorf("parsing board file: %v", err)
	}
	if err := bs.validate(); err != nil {
		return nil, fmt.Errorf("invalid board file: %w", err)
	}
	return &bs, nil
}

// validate ensures the board set can deal boards.
func (bs *BoardSet) validate() error {
	switch {
	case len(bs.Words) == 0:
		return fmt.Errorf("at least one language required")
	case len(bs.Tiles) == 0:
		return fmt.Errorf("at least one tile map required")
	}
	for lang, words := range bs.Words {
		if len(words) < Size*Size {
			return fmt.Errorf("language %v needs at least %v words, has %v", lang, Size*Size, len(words))
		}
	}
	for i, tm := range bs.Tiles {
		for _, row := range tm {
			for _, t := range row {
				switch t {
				case TileNeutral, TileBlue, TileRed, TileDeath:
				default:
					return fmt.Errorf("tile map %v has unknown tile %q", i, t)
				}
			}
		}
	}
	return nil
}

// Languages returns the language keys of the board set.
func (bs *BoardSet) Languages() []string {
	langs := make([]string, 0, len(bs.Words))
	for lang := range bs.Words {
		langs = append(langs, lang)
	}
	return langs
}

// NewBoard deals a board for the language: 25 words drawn without
// replacement, a tile map picked uniformly, and no cards revealed.
func (bs *BoardSet) NewBoard(language string, rnd *rand.Rand) (*Board, error) {
	dictionary, ok := bs.Words[language]
	if !ok {
		return nil, fmt.Errorf("language %v not found", language)
	}
	words := make([]string, len(dictionary))
	copy(words, dictionary)
	rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	var b Board
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			b.Words[x][y] = words[x*Size+y]
		}
	}
	b.Tiles = bs.Tiles[rnd.Intn(len(bs.Tiles))]
	return &b, nil
}

// PutCard reveals the card at (x, y) and returns its tile.  Revealing an
// already revealed card changes nothing.
func (b *Board) PutCard(x, y int) Tile {
	b.Cards[x][y] = true
	return b.Tiles[x][y]
}

// StartingTeam returns the color with the most tiles, blue on a tie.
// Curated maps give the starting team nine tiles and the other eight.
func (b *Board) StartingTeam() game.Team {
	var blue, red int
	for _, row := range b.Tiles {
		for _, t := range row {
			switch t {
			case TileBlue:
				blue++
			case TileRed:
				red++
			}
		}
	}
	if red > blue {
		return game.TeamRed
	}
	return game.TeamBlue
}

// Winner returns the team that has every one of its tiles revealed.
func (b *Board) Winner() (game.Team, bool) {
	if b.revealed(TileBlue) {
		return game.TeamBlue, true
	}
	if b.revealed(TileRed) {
		return game.TeamRed, true
	}
	return "", false
}

// revealed reports whether every tile of the color has its card revealed.
func (b *Board) revealed(search Tile) bool {
	for x, row := range b.Tiles {
		for y, t := range row {
			if t == search && !b.Cards[x][y] {
				return false
			}
		}
	}
	return true
}
