package message

import (
	"github.com/codewords-game/codewords/game"
	"github.com/codewords-game/codewords/game/board"
)

type (
	// Response pairs an outbound message body with the connection it is
	// for.  Rooms emit responses; the socket layer delivers them.
	Response struct {
		Token game.Token
		Body  interface{}
	}

	// ErrorBody reports a failed request to the offending player only.
	ErrorBody struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}

	// TilesBody reveals the full tile map.  It is sent privately to the
	// two codemasters when play starts.
	TilesBody struct {
		Response string        `json:"response"`
		Tiles    board.TileMap `json:"tiles"`
	}
)

// NewError builds an error response for the token.
func NewError(token game.Token, err error) Response {
	return Response{
		Token: token,
		Body: ErrorBody{
			Response: "error",
			Error:    err.Error(),
		},
	}
}

// NewTiles builds a private tile map reveal for the token.
func NewTiles(token game.Token, tiles board.TileMap) Response {
	return Response{
		Token: token,
		Body: TilesBody{
			Response: "tiles",
			Tiles:    tiles,
		},
	}
}
