package board

import "encoding/json"

// jsonBoard is the public view of a board: the words and, for each cell,
// nil until the card is revealed, then its tile color.  The tile map
// itself is never part of the public view; codemasters get it through a
// separate private message.
type jsonBoard struct {
	Words WordMap          `json:"words"`
	Cards [Size][Size]*Tile `json:"cards"`
}

// MarshalJSON writes the board as seen by operatives.
func (b Board) MarshalJSON() ([]byte, error) {
	var jb jsonBoard
	jb.Words = b.Words
	for x, row := range b.Cards {
		for y, revealed := range row {
			if revealed {
				t := b.Tiles[x][y]
				jb.Cards[x][y] = &t
			}
		}
	}
	return json.Marshal(jb)
}
