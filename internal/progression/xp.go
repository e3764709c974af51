// Package progression holds the pure rules for XP, levels, titles, chapters
// and streaks. Nothing here touches storage.
package progression

import (
	"math"

	"questforge/internal/models"
)

// XPPerLevel is the linear step of the level curve
const XPPerLevel = 100

var difficultyBaseXP = map[models.Difficulty]float64{
	models.DifficultyEasy:   20,
	models.DifficultyNormal: 40,
	models.DifficultyHard:   70,
}

var impactMultiplier = map[models.Impact]float64{
	models.ImpactLow:    1,
	models.ImpactMedium: 1.5,
	models.ImpactHigh:   2,
}

// RequiredXPForLevel returns the XP needed to leave the given level
func RequiredXPForLevel(level int) int {
	return XPPerLevel * level
}

// QuestXP returns the reward for a quest of the given difficulty and impact.
// Unknown values fall back to normal difficulty and medium impact so legacy
// records never fail to score.
func QuestXP(d models.Difficulty, i models.Impact) int {
	base, ok := difficultyBaseXP[d]
	if !ok {
		base = difficultyBaseXP[models.DifficultyNormal]
	}
	mult, ok := impactMultiplier[i]
	if !ok {
		mult = impactMultiplier[models.ImpactMedium]
	}
	return int(math.Round(base * mult))
}

// ApplyXP adds gain to xp and runs the level-up loop. A single large gain can
// cross several levels.
func ApplyXP(level, xp, gain int) (newLevel, newXP int) {
	if level < 1 {
		level = 1
	}
	xp += gain
	for xp >= RequiredXPForLevel(level) {
		xp -= RequiredXPForLevel(level)
		level++
	}
	return level, xp
}

// LevelProgress returns the percentage of the current level already earned, capped at 100
func LevelProgress(level, xp int) int {
	required := RequiredXPForLevel(level)
	if required <= 0 {
		return 100
	}
	pct := int(math.Round(float64(xp) / float64(required) * 100))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
