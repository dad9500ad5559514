package socket

import "github.com/codewords-game/codewords/game"

// idGenerator hands out small dense connection tokens.  Freed tokens are
// recycled from a stack before the counter grows, keeping the token space
// compact.  Token 0 is never handed out.
type idGenerator struct {
	counter game.Token
	stack   []game.Token
}

// newIDGenerator creates a generator whose first token is 1.
func newIDGenerator() *idGenerator {
	return &idGenerator{counter: 1}
}

// next pops a recycled token or increments the counter.
func (g *idGenerator) next() game.Token {
	if n := len(g.stack); n > 0 {
		token := g.stack[n-1]
		g.stack = g.stack[:n-1]
		return token
	}
	token := g.counter
	g.counter++
	return token
}

// recycle returns a token for reuse.
func (g *idGenerator) recycle(token game.Token) {
	g.stack = append(g.stack, token)
}
