package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamify-server/internal/domain"
	"gamify-server/internal/mocks"
)

const testUserID = "demo_user"

var testInput = domain.UserInput{
	GoalDescription: "Learn to play the guitar this year",
	InterestTheme:   "Space Exploration",
}

const validSubGoalsJSON = `[
  {"id": "quest_1", "description": "Learn basic chords", "xp": 30, "status": "pending"},
  {"id": "quest_2", "description": "Practice daily for a month", "xp": 50, "status": "pending"},
  {"id": "quest_3", "description": "Play a full song", "xp": 70, "status": "pending"}
]`

const validThemeJSON = `{
  "theme_title": "Cosmic Strummer",
  "lore_blurb": "Travel the galaxy one chord at a time.",
  "visual_palette": {"primary": "#101010", "secondary": "#202020", "accent": "#303030"},
  "currency_name": "Star Notes",
  "badge_ideas": [
    {"id": "lift_off", "name": "Lift Off", "description": "Complete your first quest"}
  ]
}`

func newTestGameGenerator(t *testing.T) (*GameGenerator, *mocks.MockAIClient) {
	mockClient := mocks.NewMockAIClient(t)
	return NewGameGenerator(mockClient, zap.NewNop()), mockClient
}

func TestGenerateGame_Success(t *testing.T) {
	gen, mockClient := newTestGameGenerator(t)

	// Квесты идут при температуре 0.7, тема - при 0.8.
	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureStructured).
		Return(validSubGoalsJSON, nil).Once()
	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureCreative).
		Return(validThemeJSON, nil).Once()

	game, err := gen.GenerateGame(context.Background(), testInput, testUserID)
	require.NoError(t, err)

	assert.Equal(t, "Complete: Learn to play the guitar this year", game.Goal.Title)
	require.Len(t, game.SubGoals, 3)
	assert.Equal(t, 150, game.FeedbackSystem.XPBar.Total)
	// ceil(150 / 5) = 30
	assert.Equal(t, 30, game.FeedbackSystem.Levels.XPPerLevel)
	assert.Equal(t, 5, game.FeedbackSystem.Levels.Total)
	assert.Equal(t, 1, game.FeedbackSystem.Levels.Current)

	require.Len(t, game.Rewards.RewardsTable, 5)
	assert.Equal(t, 30, game.Rewards.RewardsTable[0].XPRequired)
	assert.Equal(t, 150, game.Rewards.RewardsTable[4].XPRequired)
	assert.Equal(t, []string{"Level 1 Achievement"}, game.Rewards.RewardsTable[0].Rewards)

	assert.Equal(t, "Star Notes", game.Rewards.CurrencyName)
	require.Len(t, game.Rewards.Badges, 1)
	assert.False(t, game.Rewards.Badges[0].Unlocked)

	assert.Equal(t, "Cosmic Strummer", game.Theme.ThemeTitle)
	assert.Equal(t, domain.DifficultyMedium, game.ChallengeCurve.DifficultyPerStep)
	assert.Equal(t, testUserID, game.Metadata.UserID)
	assert.Equal(t, "Space Exploration", game.Metadata.InterestTheme)
	assert.NotEmpty(t, game.Metadata.CreatedAt)

	mockClient.AssertExpectations(t)
}

func TestGenerateGame_FallbackOnUnparsableResponses(t *testing.T) {
	gen, mockClient := newTestGameGenerator(t)

	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureStructured).
		Return("I am sorry, I cannot produce JSON today.", nil).Once()
	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureCreative).
		Return("Still no JSON.", nil).Once()

	game, err := gen.GenerateGame(context.Background(), testInput, testUserID)
	require.NoError(t, err)

	// Резервные квесты: 25 + 50 + 100.
	require.Len(t, game.SubGoals, 3)
	assert.Equal(t, "step_1", game.SubGoals[0].ID)
	assert.Equal(t, 175, game.FeedbackSystem.XPBar.Total)
	assert.Equal(t, 35, game.FeedbackSystem.Levels.XPPerLevel)

	// Резервная тема строится вокруг интереса пользователя.
	assert.Equal(t, "Space Exploration Adventure", game.Theme.ThemeTitle)
	assert.Equal(t, "Space Exploration Points", game.Rewards.CurrencyName)
	assert.Equal(t, "#3B82F6", game.Theme.VisualPalette.Primary)
	require.Len(t, game.Rewards.Badges, 3)
	assert.Equal(t, "first_step", game.Rewards.Badges[0].ID)
}

func TestGenerateGame_AIErrorPropagates(t *testing.T) {
	gen, mockClient := newTestGameGenerator(t)

	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureStructured).
		Return("", domain.ErrAIGenerationFailed).Once()

	_, err := gen.GenerateGame(context.Background(), testInput, testUserID)
	assert.ErrorIs(t, err, domain.ErrAIGenerationFailed)
}

func TestGenerateGame_SubGoalCoercion(t *testing.T) {
	gen, mockClient := newTestGameGenerator(t)

	// Модель вернула дробный опыт, пустой id и квест без описания.
	rawSubGoals := `[
	  {"description": "First step", "xp": 25.5},
	  {"description": "", "xp": 50},
	  {"id": "final", "description": "Last step", "xp": 100, "status": "in_progress"}
	]`
	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureStructured).
		Return(rawSubGoals, nil).Once()
	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureCreative).
		Return(validThemeJSON, nil).Once()

	game, err := gen.GenerateGame(context.Background(), testInput, testUserID)
	require.NoError(t, err)

	require.Len(t, game.SubGoals, 2)
	assert.Equal(t, "quest_1", game.SubGoals[0].ID)
	assert.Equal(t, 25, game.SubGoals[0].XP)
	assert.Equal(t, domain.SubGoalStatusPending, game.SubGoals[0].Status)
	assert.Equal(t, "final", game.SubGoals[1].ID)
	assert.Equal(t, domain.SubGoalStatusInProgress, game.SubGoals[1].Status)
}

func TestCalculateLevels_CeilDivision(t *testing.T) {
	subGoals := []domain.SubGoal{
		{ID: "a", XP: 33},
		{ID: "b", XP: 33},
		{ID: "c", XP: 33},
	}
	xpPerLevel, tiers := calculateLevels(subGoals, 5)
	// ceil(99 / 5) = 20
	assert.Equal(t, 20, xpPerLevel)
	require.Len(t, tiers, 5)
	assert.Equal(t, 100, tiers[4].XPRequired)
}

func TestGenerateGame_ContextCancelled(t *testing.T) {
	gen, mockClient := newTestGameGenerator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureStructured).
		Return("", errors.New("context canceled")).Once()

	_, err := gen.GenerateGame(ctx, testInput, testUserID)
	assert.Error(t, err)
}
