package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamify-server/internal/domain"
)

func sampleGame() *domain.GamifiedGame {
	return &domain.GamifiedGame{
		Goal: domain.Goal{
			Title:           "Complete: Learn to play the guitar",
			SuccessCriteria: "Complete all sub-goals and reach maximum level",
		},
		SubGoals: []domain.SubGoal{
			{ID: "step_1", Description: "Learn basic chords", XP: 25, Status: domain.SubGoalStatusPending},
			{ID: "step_2", Description: "Play a full song", XP: 50, Status: domain.SubGoalStatusPending},
		},
		Rules: domain.Rules{
			ActionsAllowed: []string{"Complete quests to earn XP"},
		},
		FeedbackSystem: domain.FeedbackSystem{
			XPBar:  domain.XPBar{Current: 0, Total: 75},
			Levels: domain.LevelProgress{Current: 1, Total: 5, XPPerLevel: 15},
		},
		Rewards: domain.Rewards{
			CurrencyName: "Guitar Points",
			RewardsTable: []domain.RewardTier{
				{Level: 1, XPRequired: 15, Rewards: []string{"Level 1 Achievement"}},
			},
			Badges: []domain.Badge{
				{ID: "first_step", Name: "First Steps", Description: "Complete your first quest"},
			},
		},
		Theme: domain.Theme{
			ThemeTitle: "Guitar Adventure",
			LoreBlurb:  "A journey through music.",
		},
		Metadata: domain.GameMetadata{
			CreatedAt: "2025-05-01T12:00:00Z",
			UserID:    "demo_user",
		},
	}
}

func TestWriteGame_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	err := NewPDFExporter().WriteGame(&buf, sampleGame())
	require.NoError(t, err)

	// Валидный PDF начинается с сигнатуры %PDF.
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestWriteGame_WithDecisionPoints(t *testing.T) {
	game := sampleGame()
	game.PlayerAgency.DecisionPoints = []domain.DecisionPoint{
		{ID: "decision_1", Description: "Choose Your Game Style", Options: []string{"Epic", "Sprint"}},
	}

	var buf bytes.Buffer
	err := NewPDFExporter().WriteGame(&buf, game)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
