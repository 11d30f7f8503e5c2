package engine

import (
	"slices"
	"time"

	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/logger"
	"conquest/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

type Option func(e *Local)

func WithMaxRounds(rounds int) Option {
	return func(e *Local) {
		if rounds > 0 {
			e.maxRounds = rounds
		}
	}
}

// WithState starts from a prepared board instead of dealing one.
func WithState(state *game.State) Option {
	return func(e *Local) {
		if state != nil {
			e.State = state
		}
	}
}

// Local plays a game in process, resolving combat with dice.
type Local struct {
	ID        string
	State     *game.State
	Agents    []agent.Agent // Indexed by player ID - 1
	rules     game.Rules
	deck      *game.Deck
	rng       *rand.Rand
	maxRounds int
	log       zerolog.Logger
}

// LocalEngine deals the map between one player per agent, troops each, with
// player 1 to move.
func LocalEngine(agents []agent.Agent, m *game.Map, rules game.Rules, rng *rand.Rand, troops int, options ...Option) *Local {
	if len(agents) < 2 {
		panic("need at least two players")
	}

	id := uuid.NewString()
	e := &Local{
		ID:        id,
		Agents:    agents,
		rules:     rules,
		deck:      game.NewDeck(m, rng),
		rng:       rng,
		maxRounds: MaxRounds,
		log:       logger.ForGame(id),
	}
	for _, option := range options {
		option(e)
	}
	if e.State == nil {
		e.State = game.NewState(m, len(agents))
		e.State.Deal(rng, troops)
		e.State.Agent = 1
	}
	if e.State.Players != len(agents) {
		panic("number of players does not match number of agents")
	}
	return e
}

// Run executes the entire game loop until a winner is found or the round limit hits.
func (e *Local) Run() (int, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		ID:             e.ID,
		StartingPlayer: e.State.Agent,
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	e.log.Info().Msgf("player %d is starting", e.State.Agent)

	step, rounds := 0, 0
	winner, over := e.State.Winner()
	for !over && rounds < e.maxRounds {
		player := e.State.Agent
		move, searchMetric := e.Agents[player-1].FindMove(e.State.Copy())
		outcome := e.Play(move)

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Attacks:      outcome.Attacks,
			SearchMetric: searchMetric,
		})
		e.log.Debug().
			Int("step", step).
			Int("player", player).
			Str("move", move.String()).
			Int("captured", outcome.Captured).
			Strs("bonuses", outcome.Bonuses).
			Int("skipped", outcome.Skipped).
			Msg("played move")

		winner, over = e.State.Winner()
		next := e.State.NextPlayer()
		if next <= player {
			rounds++
		}
		e.State.Agent = next
	}

	if over {
		e.log.Info().Msgf("player %d won after %d moves", winner, step)
	} else {
		e.log.Info().Msgf("stopped after %d rounds without a winner", rounds)
	}

	gameMetric.Winner = winner
	gameMetric.Leader = e.leader()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.Rounds = rounds
	return winner, gameMetric, moveMetrics
}

// leader returns the living player with the best resource evaluation, lowest ID
// on ties. A winner always leads.
func (e *Local) leader() int {
	best, bestScore := game.Neutral, 0.0
	for _, p := range e.State.AlivePlayers() {
		score := game.EvaluateResources(e.State, p)
		e.log.Debug().
			Int("player", p).
			Float64("resources", score).
			Float64("borders", game.EvaluateBorderStrength(e.State, p)).
			Msg("final evaluation")
		if best == game.Neutral || score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

// Play applies a move for the player to move. Parts that are not legal when
// reached are skipped, so a plan spoiled by a failed capture stops short.
func (e *Local) Play(move game.Move) Outcome {
	s := e.State
	outcome := Outcome{}

	// Draft
	pool := s.Reinforcements(s.Agent)
	for _, trade := range move.Draft.Trades {
		value, ok := e.trade(trade)
		if !ok {
			outcome.Skipped++
			continue
		}
		pool += value
	}
	for _, d := range move.Draft.Deployments {
		troops := min(d.Troops, pool)
		if troops <= 0 || s.Deploy(d.Territory, troops) != nil {
			outcome.Skipped++
			continue
		}
		pool -= troops
		outcome.Drafted += troops
	}
	if owned := s.TerritoriesOf(s.Agent); pool > 0 && len(owned) > 0 {
		if err := s.Deploy(owned[0], pool); err != nil {
			panic(err)
		}
		outcome.Drafted += pool
	}

	// Attack
	for _, a := range move.Attacks {
		if s.Owner(a.From) != s.Agent || s.Owner(a.To) == s.Agent {
			outcome.Skipped++
			continue
		}
		committed := min(a.MoveTroops, s.Troops(a.From)-1)
		defender := s.Owner(a.To)
		captured, err := s.Attack(a.From, a.To, committed, e.rules, e.rng)
		if err != nil {
			e.log.Debug().Err(err).Str("attack", a.String()).Msg("skipped attack")
			outcome.Skipped++
			continue
		}
		outcome.Attacks++
		if !captured {
			continue
		}
		outcome.Captured++
		view := s.Territory(a.To)
		e.log.Debug().Int("territory", view.ID).Int("troops", view.Troops).Str("bonus", view.Bonus).Msg("captured territory")
		if b := s.Map.BonusOf(a.To); b != nil && s.BonusOwner(b.Name) == s.Agent {
			outcome.Bonuses = append(outcome.Bonuses, b.Name)
		}
		if defender != game.Neutral && !s.IsAlive(defender) {
			outcome.Eliminated = append(outcome.Eliminated, defender)
			s.Hands[s.Agent] = append(s.Hands[s.Agent], s.Hands[defender]...)
			s.Hands[defender] = []game.Card{}
		}
	}

	// Fortify
	if f := move.Fortify; f != nil {
		if s.Owner(f.From) == s.Agent && s.MoveTroops(f.From, f.To, f.Troops) == nil {
			outcome.Fortified = true
		} else {
			outcome.Skipped++
		}
	}

	if outcome.Captured > 0 {
		if card, ok := e.deck.Draw(); ok {
			s.Hands[s.Agent] = append(s.Hands[s.Agent], card)
		}
	}
	return outcome
}

// trade hands in the cards when the player holds them all, placing the owned
// territory bonus on the first card showing a territory the player holds.
func (e *Local) trade(trade game.Trade) (int, bool) {
	s := e.State
	if !trade.IsSet() {
		return 0, false
	}
	hand := slices.Clone(s.Hands[s.Agent])
	for _, card := range trade.Cards {
		i := slices.Index(hand, card)
		if i < 0 {
			return 0, false
		}
		hand = slices.Delete(hand, i, i+1)
	}
	s.Hands[s.Agent] = hand
	e.deck.Discard(trade.Cards[:]...)
	s.Exchanges++

	for _, card := range trade.Cards {
		if card.TerritoryID != game.Neutral && s.Owner(card.TerritoryID) == s.Agent {
			s.TroopCounts[card.TerritoryID] += game.OwnedCardBonus
			break
		}
	}
	return trade.Value(), true
}
