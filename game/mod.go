// Package game models the static map, the per-turn state snapshot and the
// moves a player can submit for a turn.
package game

// Neutral marks a territory that is held by no player.
const Neutral = -1

// MinReinforcements is the smallest number of troops a player drafts per turn.
const MinReinforcements = 3

// TerritoriesPerTroop is how many held territories earn one drafted troop.
const TerritoriesPerTroop = 3
