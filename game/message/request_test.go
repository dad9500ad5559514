package message

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/codewords-game/codewords/game"
)

func TestParseRequest(t *testing.T) {
	roomID := uuid.New()
	parseRequestTests := []struct {
		json   string
		want   Request
		wantOk bool
	}{
		{json: `not json`},
		{json: `{}`}, // request field missing
		{json: `{"request":"dance"}`},
		{json: `{"request":"room"}`},
		{json: `{"request":"room","name":"alice"}`}, // language missing
		{json: `{"request":"room","name":"alice","language":"en"}`, want: Request{Kind: KindRoom, Name: "alice", Language: "en"}, wantOk: true},
		{json: `{"request":"join","id":"garbage","name":"bob"}`},
		{json: `{"request":"join","id":"` + roomID.String() + `"}`}, // name missing
		{json: `{"request":"join","id":"` + roomID.String() + `","name":"bob"}`, want: Request{Kind: KindJoin, RoomID: roomID, Name: "bob"}, wantOk: true},
		{json: `{"request":"team","team":"green"}`},
		{json: `{"request":"team","team":"red"}`, want: Request{Kind: KindTeam, Team: game.TeamRed}, wantOk: true},
		{json: `{"request":"start","blue":"alice"}`}, // red master missing
		{json: `{"request":"start","blue":"alice","red":"carol"}`, want: Request{Kind: KindStart, Blue: "alice", Red: "carol"}, wantOk: true},
		{json: `{"request":"hint","guesses":2}`}, // hint word missing
		{json: `{"request":"hint","hint":"fruit"}`},
		{json: `{"request":"hint","hint":"fruit","guesses":0}`},
		{json: `{"request":"hint","hint":"fruit","guesses":10}`},
		{json: `{"request":"hint","hint":"fruit","guesses":3}`, want: Request{Kind: KindHint, Hint: "fruit", Guesses: 3}, wantOk: true},
		{json: `{"request":"guess","y":1}`}, // x missing
		{json: `{"request":"guess","x":5,"y":1}`},
		{json: `{"request":"guess","x":1,"y":-1}`},
		{json: `{"request":"guess","x":0,"y":4}`, want: Request{Kind: KindGuess, X: 0, Y: 4}, wantOk: true},
		{json: `{"request":"pass"}`, want: Request{Kind: KindPass}, wantOk: true},
		{json: `{"request":"reset"}`},
		{json: `{"request":"reset","language":"en"}`, want: Request{Kind: KindReset, Language: "en"}, wantOk: true},
	}
	for i, test := range parseRequestTests {
		got, err := ParseRequest([]byte(test.json))
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error parsing %v", i, test.json)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case *got != test.want:
			t.Errorf("Test %v: wanted %+v, got %+v", i, test.want, *got)
		}
	}
}

func TestNewError(t *testing.T) {
	r := NewError(3, errors.New("oops"))
	if r.Token != 3 {
		t.Errorf("wanted token 3, got %v", r.Token)
	}
	body, ok := r.Body.(ErrorBody)
	if !ok || body.Response != "error" || body.Error != "oops" {
		t.Errorf("wanted an error body saying oops, got %+v", r.Body)
	}
}
