// Package threetile provides a ThreeTile play session on top of the rule
// engine in core.
package threetile

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
	"github.com/vovakirdan/threetile/internal/games/threetile/levels"
	"github.com/vovakirdan/threetile/internal/storage"
)

// ErrGameOver is returned for moves attempted after the level ended.
var ErrGameOver = errors.New("game over")

// ErrBadToken is returned for move tokens Play cannot parse.
var ErrBadToken = errors.New("bad move token")

// GameState is the session status shown to players.
type GameState struct {
	Score     int // tiles completed so far
	Moves     int
	Remaining int // tiles still on the board
	Outcome   core.Outcome
	GameOver  bool
	Won       bool
}

// Game is one play-through of a level. It is not safe for concurrent use.
type Game struct {
	id        uuid.UUID
	level     levels.Level
	rules     core.Rules
	rulesName string
	state     *core.Level
	journal   []string
	log       *log.Logger

	behaviours []core.Behaviour
	fresh      bool
}

// NewGame builds a session for level under rules. A nil logger discards
// output.
func NewGame(level levels.Level, rules core.Rules, logger *log.Logger) (*Game, error) {
	state, err := level.Build(rules)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		id:        uuid.New(),
		level:     level,
		rules:     rules,
		rulesName: rules.String(),
		state:     state,
	}
	g.log = logger.With("session", g.id.String()[:8], "level", level.ID)
	g.log.Debug("new game", "tiles", state.TileCount(), "rules", g.rulesName)
	return g, nil
}

// ID returns the session identifier.
func (g *Game) ID() string { return g.id.String() }

// LevelID returns the id of the level being played.
func (g *Game) LevelID() string { return g.level.ID }

// Rules returns the rules in effect.
func (g *Game) Rules() core.Rules { return g.rules }

// SetRulesName overrides the label stored with the session, typically
// the preset name.
func (g *Game) SetRulesName(name string) { g.rulesName = name }

// Level exposes the live engine state for rendering. Callers must not
// run moves on it directly.
func (g *Game) Level() *core.Level { return g.state }

// Behaviours lists the legal clearing actions, cached between moves.
func (g *Game) Behaviours() []core.Behaviour {
	if !g.fresh {
		g.behaviours = g.state.Behaviours()
		g.fresh = true
	}
	return g.behaviours
}

// Select stages one tile.
func (g *Game) Select(index int) error {
	return g.run(core.Select(index), strconv.Itoa(index))
}

// Apply executes a behaviour as a single tint move.
func (g *Game) Apply(b core.Behaviour) error {
	if err := g.run(b.Tint(), tintToken(b.Tiles)); err != nil {
		return err
	}
	g.log.Debug("applied behaviour", "kind", b.Kind, "color", b.Color)
	return nil
}

// ApplyNth executes the n-th entry of Behaviours.
func (g *Game) ApplyNth(n int) error {
	bs := g.Behaviours()
	if n < 0 || n >= len(bs) {
		return fmt.Errorf("%w: behaviour %d of %d", core.ErrIllegalMove, n, len(bs))
	}
	return g.Apply(bs[n])
}

// Play executes one journal token: a tile index, "bN" for behaviour N or
// "tI,J,K" for a tint of the listed tiles.
func (g *Game) Play(token string) error {
	token = strings.TrimSpace(token)
	switch {
	case token == "":
		return fmt.Errorf("%w: empty", ErrBadToken)
	case token[0] == 'b':
		n, err := strconv.Atoi(token[1:])
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadToken, token)
		}
		return g.ApplyNth(n)
	case token[0] == 't':
		var tiles []int
		for _, part := range strings.Split(token[1:], ",") {
			i, err := strconv.Atoi(part)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrBadToken, token)
			}
			tiles = append(tiles, i)
		}
		return g.run(core.Tint(tiles...), tintToken(tiles))
	default:
		i, err := strconv.Atoi(token)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadToken, token)
		}
		return g.Select(i)
	}
}

// Undo reverses the last move.
func (g *Game) Undo() error {
	if len(g.journal) == 0 {
		return core.ErrEmptyHistory
	}
	m, err := g.state.UndoMove()
	if err != nil {
		return err
	}
	g.journal = g.journal[:len(g.journal)-1]
	g.fresh = false
	g.log.Debug("undo", "move", m)
	return nil
}

func (g *Game) run(m *core.Move, token string) error {
	if g.state.Outcome() != core.OutcomeInProgress {
		return ErrGameOver
	}
	if !m.CanDo(g.state) {
		g.log.Warn("move rejected", "move", m)
		return fmt.Errorf("%w: %s", core.ErrIllegalMove, m)
	}
	if err := g.state.DoMove(m); err != nil {
		return err
	}
	g.journal = append(g.journal, token)
	g.fresh = false
	g.log.Debug("move", "move", m, "resolved", m.Resolved(), "completed", m.Completed())

	switch g.state.Outcome() {
	case core.OutcomeCleared:
		g.log.Info("level cleared", "moves", len(g.journal))
	case core.OutcomeStuck:
		g.log.Info("level stuck", "moves", len(g.journal), "remaining", g.state.Board().Len())
	}
	return nil
}

// State returns the current session status.
func (g *Game) State() GameState {
	outcome := g.state.Outcome()
	return GameState{
		Score:     g.state.Archive().Total(),
		Moves:     len(g.journal),
		Remaining: g.state.Board().Len(),
		Outcome:   outcome,
		GameOver:  outcome != core.OutcomeInProgress,
		Won:       outcome == core.OutcomeCleared,
	}
}

// Journal returns the move tokens played so far. Feeding them to Play on
// a fresh game reproduces the session.
func (g *Game) Journal() []string {
	out := make([]string, len(g.journal))
	copy(out, g.journal)
	return out
}

// Record returns the session in storable form.
func (g *Game) Record() storage.Session {
	st := g.State()
	return storage.Session{
		SessionID: g.ID(),
		LevelID:   g.level.ID,
		Rules:     g.rulesName,
		Moves:     st.Moves,
		Completed: st.Score,
		Outcome:   st.Outcome.String(),
		Journal:   g.Journal(),
	}
}

func tintToken(tiles []int) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = strconv.Itoa(t)
	}
	return "t" + strings.Join(parts, ",")
}
