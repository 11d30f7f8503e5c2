package store

type migration struct {
	version    int
	name       string
	statements []string
}

// migrations are append only; a released version is never edited.
var migrations = []migration{
	{
		version: 1,
		name:    "games_and_moves",
		statements: []string{
			`CREATE TABLE games (
				id TEXT PRIMARY KEY,
				experiment TEXT NOT NULL,
				seats TEXT NOT NULL,
				starting_player INTEGER NOT NULL,
				winner INTEGER NOT NULL,
				started_at DATETIME NOT NULL,
				ended_at DATETIME NOT NULL,
				duration_ns INTEGER NOT NULL,
				total_moves INTEGER NOT NULL,
				rounds INTEGER NOT NULL
			)`,
			`CREATE INDEX idx_games_experiment ON games(experiment)`,
			`CREATE TABLE moves (
				game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
				step INTEGER NOT NULL,
				player INTEGER NOT NULL,
				attacks INTEGER NOT NULL,
				duration_ns INTEGER NOT NULL,
				depth INTEGER NOT NULL,
				combinations INTEGER NOT NULL,
				pruned INTEGER NOT NULL,
				infeasible INTEGER NOT NULL,
				defects INTEGER NOT NULL,
				timed_out BOOLEAN NOT NULL,
				PRIMARY KEY (game_id, step)
			)`,
		},
	},
	{
		version:    2,
		name:       "game_leader",
		statements: []string{`ALTER TABLE games ADD COLUMN leader INTEGER NOT NULL DEFAULT -1`},
	},
}
