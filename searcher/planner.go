package searcher

import (
	"context"
	"errors"
	"time"

	"conquest/advisor"
	"conquest/attack"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/intent"
	"conquest/meta"
	"conquest/odds"

	"github.com/rs/zerolog/log"
)

var errPruned = errors.New("targets cost more than the troop bound")

// Config holds the tunables of a planner.
type Config struct {
	Weights         attack.Weights `yaml:"weights"`
	Rewards         intent.Rewards `yaml:"rewards"`
	CostWeight      float64        `yaml:"cost_weight"`      // score lost per troop on the captured territories
	PruneRatio      float64        `yaml:"prune_ratio"`      // of the agent's troops a target set may hold
	TerritoryBudget int            `yaml:"territory_budget"` // territories sought by a TakeTerritories intent
	MaxDepth        int            `yaml:"max_depth"`        // 0 or less searches until the generator runs out
}

func DefaultConfig() Config {
	return Config{
		Weights:         attack.DefaultWeights(),
		Rewards:         intent.DefaultRewards(),
		CostWeight:      meta.COST_WEIGHT,
		PruneRatio:      meta.PRUNE_RATIO,
		TerritoryBudget: meta.TERRITORY_BUDGET,
		MaxDepth:        meta.MAX_DEPTH,
	}
}

type Option func(p *Planner)

type Planner struct {
	table   odds.Table
	config  Config
	metrics metrics.Collector
}

func WithConfig(config Config) Option {
	return func(p *Planner) {
		p.config = config
	}
}

// WithMaxDepth caps the search depth. A depth of 0 or less removes the cap.
func WithMaxDepth(depth int) Option {
	return func(p *Planner) {
		p.config.MaxDepth = max(depth, 0)
	}
}

func WithMetrics() Option {
	return func(p *Planner) {
		p.metrics = metrics.NewCollector()
	}
}

func NewPlanner(table odds.Table, options ...Option) *Planner {
	if table == nil {
		panic("planner needs a combat odds table")
	}
	p := &Planner{ // Default values
		table:   table,
		config:  DefaultConfig(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(p)
	}
	if p.config.PruneRatio <= 0 {
		panic("prune ratio must be positive")
	}
	return p
}

// PlanTurn returns the best move found for the agent of state within budget. It
// never fails: when nothing better is found in time the move attacks nothing.
func (p *Planner) PlanTurn(state *game.State, budget time.Duration) game.Move {
	return p.Plan(state, budget).Move
}

// Plan is PlanTurn returning the full search result.
func (p *Planner) Plan(state *game.State, budget time.Duration) Result {
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	return p.Search(ctx, state)
}

// pass is the per-search view of the snapshot shared by every combination.
type pass struct {
	state       *game.State
	catalog     *intent.Catalog
	synthesizer *attack.Synthesizer
	trades      []game.Trade
	troops      int
}

// Search evaluates combinations of growing depth until the catalog has none
// left, the optional maximum depth is done or ctx is cancelled. The context is only checked between
// combinations. The snapshot is never mutated.
func (p *Planner) Search(ctx context.Context, state *game.State) Result {
	budget := time.Duration(0)
	if deadline, ok := ctx.Deadline(); ok {
		budget = max(time.Until(deadline), 0)
	}
	p.metrics.Start(budget, p.config.MaxDepth)

	var l lifecycle
	l.to(Searching)

	best := Result{
		Move:        advisor.DefaultMove(state),
		Depth:       -1,
		Combination: intent.Combination{},
	}
	ps := &pass{
		state:       state,
		catalog:     intent.NewCatalog(state, p.config.TerritoryBudget, p.config.Rewards),
		synthesizer: attack.NewSynthesizer(state, p.config.Weights),
		trades:      advisor.Trades(state),
		troops:      state.TotalTroops(state.Agent),
	}

search:
	for depth := 0; ; depth++ {
		combinations := ps.catalog.Generate(depth)
		if len(combinations) == 0 {
			l.to(Exhausted)
			break
		}
		if p.config.MaxDepth > 0 && depth > p.config.MaxDepth {
			l.to(DepthLimited)
			break
		}
		for _, comb := range combinations {
			if ctx.Err() != nil {
				l.to(TimedOut)
				break search
			}
			p.metrics.AddCombination()

			move, score, err := p.evaluate(ps, comb)
			switch {
			case errors.Is(err, errPruned):
				p.metrics.AddPruned()
				continue
			case attack.IsDefect(err):
				p.metrics.AddDefect()
				log.Error().Err(err).Str("combination", comb.String()).Msg("discarded invalid plan")
				continue
			case err != nil:
				p.metrics.AddInfeasible()
				log.Debug().Err(err).Str("combination", comb.String()).Msg("combination infeasible")
				continue
			}

			if score > best.Score {
				best.Move, best.Score, best.Combination = move, score, comb
			}
		}
		best.Depth = depth
		p.metrics.SetDepth(depth)
	}
	if l.phase == TimedOut {
		p.metrics.SetTimedOut()
	}

	best.Outcome = l.outcome
	l.to(Returned)
	best.Metric = p.metrics.Complete()

	log.Debug().
		Int("player", state.Agent).
		Int("depth", best.Depth).
		Float64("score", best.Score).
		Str("combination", best.Combination.String()).
		Str("outcome", best.Outcome.String()).
		Msg("planned turn")
	return best
}

// evaluate turns a combination into a move and scores it as its reward less the
// weighted troops standing on the territories it captures.
func (p *Planner) evaluate(ps *pass, comb intent.Combination) (game.Move, float64, error) {
	targets := ps.catalog.Targets(comb)

	// Every target must be captured, so its troops are a lower bound on the cost
	bound := 0
	for _, id := range targets {
		if ps.state.Owner(id) != ps.state.Agent {
			bound += ps.state.Troops(id)
		}
	}
	if float64(bound) > p.config.PruneRatio*float64(ps.troops) {
		return game.Move{}, 0, errPruned
	}

	plan, err := ps.synthesizer.Synthesize(targets)
	if err != nil {
		return game.Move{}, 0, err
	}
	reward := ps.catalog.Reward(comb)
	if plan.Empty() {
		return advisor.DefaultMove(ps.state), reward, nil
	}

	draft := advisor.StackDraft(ps.state, plan.Stack, ps.trades)
	available := ps.state.Troops(plan.Stack) + draft.Troops()
	attacks, err := attack.Allocate(ps.state, plan, available, p.table)
	if err != nil {
		return game.Move{}, 0, err
	}

	move := game.Move{
		Draft:   draft,
		Attacks: attacks,
		Fortify: advisor.DefaultFortify(advisor.Drafted(ps.state, draft), plan.Stack),
	}
	return move, reward - p.config.CostWeight*float64(plan.Cost), nil
}
