// meta/meta.go
package meta

import "time"

// BUDGET defines the wall-clock time given to plan one turn.
const BUDGET = 500 * time.Millisecond

// MAX_DEPTH defines the largest number of intents pursued in one turn, 0 for no limit.
const MAX_DEPTH = 0

// COST_WEIGHT defines the score lost per enemy troop on a captured territory.
const COST_WEIGHT = 0.5

// PRUNE_RATIO defines the share of the agent's troops a target set may hold before it is skipped.
const PRUNE_RATIO = 0.5

// TERRITORY_BUDGET defines how many territories a TakeTerritories intent seeks.
const TERRITORY_BUDGET = 3

// CONFIDENCE defines the capture probability considered safe.
const CONFIDENCE = 0.8

// GAMES defines the number of games per experiment.
const GAMES = 10

// PLAYERS defines the number of seats in an experiment game.
const PLAYERS = 3

// TROOPS defines the starting troops per player.
const TROOPS = 35

// MAX_ROUNDS defines the round limit of a game.
const MAX_ROUNDS = 300
