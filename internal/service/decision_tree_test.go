package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamify-server/internal/domain"
	"gamify-server/internal/mocks"
)

const validDecisionLevelJSON = `{
  "title": "Choose Your Game Style",
  "description": "What type of gamification experience do you want?",
  "options": [
    {"id": "style_1", "title": "Epic Campaign", "description": "Long-form narrative", "preview": "A saga"},
    {"id": "style_2", "title": "Daily Sprints", "description": "Short focused bursts", "preview": "Quick wins"}
  ]
}`

const validFinalGameJSON = `{
  "goal": {"title": "Master the guitar", "success_criteria": "Play three songs end to end"},
  "sub_goals": [
    {"id": "quest_1", "description": "Learn chords", "xp": 40, "status": "pending"},
    {"id": "quest_2", "description": "Play a song", "xp": 60, "status": "pending"}
  ],
  "theme": {
    "theme_title": "Cosmic Strummer",
    "lore_blurb": "Music among the stars.",
    "visual_palette": {"primary": "#111111", "secondary": "#222222", "accent": "#333333"}
  },
  "rewards": {
    "currency_name": "Star Notes",
    "badge_ideas": [{"id": "b1", "name": "First Song", "description": "Play a full song"}]
  }
}`

func newTestDecisionTree(t *testing.T) (*DecisionTreeGenerator, *mocks.MockAIClient) {
	mockClient := mocks.NewMockAIClient(t)
	return NewDecisionTreeGenerator(mockClient, zap.NewNop()), mockClient
}

// stateAtLevel строит состояние сессии с выборами до уровня level включительно.
func stateAtLevel(level int) *domain.GameGenerationState {
	decisions := make([]domain.DecisionLevel, 0, level)
	for i := 1; i <= level; i++ {
		d := domain.DecisionLevel{
			Level:       i,
			Title:       decisionLevelMetas[i].Title,
			Description: decisionLevelMetas[i].Description,
			Options: []domain.DecisionOption{
				{ID: "a", Title: "Option A"},
				{ID: "b", Title: "Option B"},
			},
		}
		if i < level {
			d.SelectedOption = "a"
		}
		decisions = append(decisions, d)
	}
	return &domain.GameGenerationState{
		UserInput:    testInput,
		Decisions:    decisions,
		CurrentLevel: level,
		IsComplete:   false,
	}
}

func TestStartGeneration(t *testing.T) {
	gen, mockClient := newTestDecisionTree(t)

	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureCreative).
		Return(validDecisionLevelJSON, nil).Once()

	state, err := gen.StartGeneration(context.Background(), testInput, testUserID)
	require.NoError(t, err)

	assert.Equal(t, 1, state.CurrentLevel)
	assert.False(t, state.IsComplete)
	assert.Nil(t, state.FinalGame)
	require.Len(t, state.Decisions, 1)
	assert.Equal(t, "Choose Your Game Style", state.Decisions[0].Title)
	require.Len(t, state.Decisions[0].Options, 2)
	assert.Equal(t, "style_1", state.Decisions[0].Options[0].ID)
	assert.Empty(t, state.Decisions[0].SelectedOption)
}

func TestStartGeneration_FallbackOptions(t *testing.T) {
	gen, mockClient := newTestDecisionTree(t)

	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureCreative).
		Return("no json here", nil).Once()

	state, err := gen.StartGeneration(context.Background(), testInput, testUserID)
	require.NoError(t, err)

	require.Len(t, state.Decisions, 1)
	assert.Equal(t, "Choose Your Game Style", state.Decisions[0].Title)
	require.Len(t, state.Decisions[0].Options, 2)
	assert.Equal(t, "option_1_level_1", state.Decisions[0].Options[0].ID)
	assert.Equal(t, "option_2_level_1", state.Decisions[0].Options[1].ID)
}

func TestMakeDecision_AdvancesToNextLevel(t *testing.T) {
	gen, mockClient := newTestDecisionTree(t)
	state := stateAtLevel(1)

	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureCreative).
		Return(validDecisionLevelJSON, nil).Once()

	next, err := gen.MakeDecision(context.Background(), state, "a", testUserID)
	require.NoError(t, err)

	assert.Equal(t, 2, next.CurrentLevel)
	assert.False(t, next.IsComplete)
	require.Len(t, next.Decisions, 2)
	assert.Equal(t, "a", next.Decisions[0].SelectedOption)
	assert.Empty(t, next.Decisions[1].SelectedOption)

	// Исходное состояние не изменилось.
	assert.Empty(t, state.Decisions[0].SelectedOption)
	assert.Equal(t, 1, state.CurrentLevel)
}

func TestMakeDecision_FinalLevelProducesGame(t *testing.T) {
	gen, mockClient := newTestDecisionTree(t)
	state := stateAtLevel(4)

	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureStructured).
		Return(validFinalGameJSON, nil).Once()

	final, err := gen.MakeDecision(context.Background(), state, "b", testUserID)
	require.NoError(t, err)

	assert.True(t, final.IsComplete)
	assert.Equal(t, domain.MaxDecisionLevels, final.CurrentLevel)
	require.NotNil(t, final.FinalGame)
	require.Len(t, final.Decisions, 4)
	assert.Equal(t, "b", final.Decisions[3].SelectedOption)

	game := final.FinalGame
	assert.Equal(t, "Master the guitar", game.Goal.Title)
	assert.Equal(t, 100, game.FeedbackSystem.XPBar.Total)
	assert.Equal(t, 20, game.FeedbackSystem.Levels.XPPerLevel)

	// Пройденные шаги дерева становятся точками выбора игры.
	require.Len(t, game.PlayerAgency.DecisionPoints, 4)
	assert.Equal(t, "decision_1", game.PlayerAgency.DecisionPoints[0].ID)
	assert.Equal(t, "Choose Your Game Style", game.PlayerAgency.DecisionPoints[0].Description)
	assert.Equal(t, []string{"Option A", "Option B"}, game.PlayerAgency.DecisionPoints[0].Options)

	require.Len(t, game.Rewards.Badges, 1)
	assert.False(t, game.Rewards.Badges[0].Unlocked)
}

func TestMakeDecision_FinalLevelFallbackGame(t *testing.T) {
	gen, mockClient := newTestDecisionTree(t)
	state := stateAtLevel(4)

	mockClient.On("GenerateText", mock.Anything, testUserID, mock.Anything, TemperatureStructured).
		Return("model refused", nil).Once()

	final, err := gen.MakeDecision(context.Background(), state, "a", testUserID)
	require.NoError(t, err)

	require.NotNil(t, final.FinalGame)
	game := final.FinalGame
	assert.Equal(t, 175, game.FeedbackSystem.XPBar.Total)
	assert.Equal(t, 35, game.FeedbackSystem.Levels.XPPerLevel)
	assert.Equal(t, "Space Exploration Points", game.Rewards.CurrencyName)
	assert.Equal(t, "Space Exploration Adventure", game.Theme.ThemeTitle)
	require.Len(t, game.PlayerAgency.DecisionPoints, 4)
}

func TestMakeDecision_CompletedSession(t *testing.T) {
	gen, _ := newTestDecisionTree(t)
	state := stateAtLevel(4)
	state.IsComplete = true

	_, err := gen.MakeDecision(context.Background(), state, "a", testUserID)
	assert.ErrorIs(t, err, domain.ErrGenerationComplete)
}

func TestMakeDecision_InvalidLevel(t *testing.T) {
	gen, _ := newTestDecisionTree(t)
	state := stateAtLevel(1)
	state.CurrentLevel = 7

	_, err := gen.MakeDecision(context.Background(), state, "a", testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidDecisionLevel)
}

func TestBuildDecisionLevelPrompt_IncludesPreviousDecisions(t *testing.T) {
	decisions := []domain.DecisionLevel{
		{Level: 1, Title: "Choose Your Game Style", SelectedOption: "style_2"},
	}
	prompt, err := buildDecisionLevelPrompt(2, testInput, decisions)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Select Your Progress System")
	assert.Contains(t, prompt, `"selected":"style_2"`)
	assert.Contains(t, prompt, testInput.GoalDescription)
}

func TestBuildDecisionLevelPrompt_InvalidLevel(t *testing.T) {
	_, err := buildDecisionLevelPrompt(5, testInput, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDecisionLevel)
}
