package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gamify-server/internal/ai"
	"gamify-server/internal/domain"
)

// DecisionTreeGenerator ведет пользователя через четыре шага выбора
// и собирает финальную игру с учетом сделанных решений. Состояние
// сессии не хранится на сервере: оно целиком живет в запросе/ответе.
type DecisionTreeGenerator struct {
	aiClient ai.AIClient
	logger   *zap.Logger
	now      func() time.Time
}

// NewDecisionTreeGenerator создает генератор дерева решений.
func NewDecisionTreeGenerator(aiClient ai.AIClient, logger *zap.Logger) *DecisionTreeGenerator {
	return &DecisionTreeGenerator{
		aiClient: aiClient,
		logger:   logger.Named("DecisionTreeGenerator"),
		now:      time.Now,
	}
}

// decisionLevelPayload - форма ответа модели на промт шага дерева.
type decisionLevelPayload struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Options     []domain.DecisionOption `json:"options"`
}

// fallbackDecisionLevel - резервный шаг с двумя нейтральными вариантами.
func fallbackDecisionLevel(level int, meta decisionLevelMeta) domain.DecisionLevel {
	return domain.DecisionLevel{
		Level:       level,
		Title:       meta.Title,
		Description: meta.Description,
		Options: []domain.DecisionOption{
			{
				ID:          fmt.Sprintf("option_1_level_%d", level),
				Title:       "Option 1",
				Description: "First choice for this level",
				Preview:     "This is what option 1 would look like",
			},
			{
				ID:          fmt.Sprintf("option_2_level_%d", level),
				Title:       "Option 2",
				Description: "Second choice for this level",
				Preview:     "This is what option 2 would look like",
			},
		},
	}
}

// generateDecisionLevel запрашивает у модели варианты для шага level.
func (g *DecisionTreeGenerator) generateDecisionLevel(
	ctx context.Context,
	userID string,
	level int,
	input domain.UserInput,
	previousDecisions []domain.DecisionLevel,
) (domain.DecisionLevel, error) {
	prompt, err := buildDecisionLevelPrompt(level, input, previousDecisions)
	if err != nil {
		return domain.DecisionLevel{}, err
	}

	rawResponse, err := g.aiClient.GenerateText(ctx, userID, prompt, TemperatureCreative)
	if err != nil {
		return domain.DecisionLevel{}, fmt.Errorf("decision level %d generation: %w", level, err)
	}

	meta := decisionLevelMetas[level]
	content := ExtractJSONContent(rawResponse)
	if content != "" {
		var payload decisionLevelPayload
		if err := json.Unmarshal([]byte(content), &payload); err == nil && len(payload.Options) > 0 {
			result := domain.DecisionLevel{
				Level:       level,
				Title:       payload.Title,
				Description: payload.Description,
				Options:     payload.Options,
			}
			if result.Title == "" {
				result.Title = meta.Title
			}
			if result.Description == "" {
				result.Description = meta.Description
			}
			return result, nil
		}
	}

	g.logger.Warn("Failed to parse decision level from model response, using fallback",
		zap.String("user_id", userID),
		zap.Int("level", level),
		zap.Int("response_length", len(rawResponse)))
	return fallbackDecisionLevel(level, meta), nil
}

// StartGeneration начинает сессию дерева решений: генерирует первый шаг
// и возвращает стартовое состояние.
func (g *DecisionTreeGenerator) StartGeneration(ctx context.Context, input domain.UserInput, userID string) (*domain.GameGenerationState, error) {
	g.logger.Info("Starting decision tree session",
		zap.String("user_id", userID),
		zap.String("interest_theme", input.InterestTheme))

	firstLevel, err := g.generateDecisionLevel(ctx, userID, 1, input, nil)
	if err != nil {
		return nil, err
	}

	return &domain.GameGenerationState{
		UserInput:    input,
		Decisions:    []domain.DecisionLevel{firstLevel},
		CurrentLevel: 1,
		IsComplete:   false,
	}, nil
}

// MakeDecision фиксирует выбор пользователя на текущем шаге и либо
// генерирует следующий шаг, либо - после четвертого - собирает финальную
// игру. Входное состояние не модифицируется: возвращается новая копия.
func (g *DecisionTreeGenerator) MakeDecision(
	ctx context.Context,
	state *domain.GameGenerationState,
	selectedOptionID string,
	userID string,
) (*domain.GameGenerationState, error) {
	if state.IsComplete {
		return nil, domain.ErrGenerationComplete
	}
	if state.CurrentLevel < 1 || state.CurrentLevel > domain.MaxDecisionLevels {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDecisionLevel, state.CurrentLevel)
	}

	// Копируем шаги и проставляем выбор на текущем уровне.
	updatedDecisions := make([]domain.DecisionLevel, len(state.Decisions))
	copy(updatedDecisions, state.Decisions)
	for i := range updatedDecisions {
		if updatedDecisions[i].Level == state.CurrentLevel {
			updatedDecisions[i].SelectedOption = selectedOptionID
		}
	}

	nextLevel := state.CurrentLevel + 1
	if nextLevel <= domain.MaxDecisionLevels {
		newLevel, err := g.generateDecisionLevel(ctx, userID, nextLevel, state.UserInput, updatedDecisions)
		if err != nil {
			return nil, err
		}
		return &domain.GameGenerationState{
			UserInput:    state.UserInput,
			Decisions:    append(updatedDecisions, newLevel),
			CurrentLevel: nextLevel,
			IsComplete:   false,
		}, nil
	}

	finalGame, err := g.generateFinalGame(ctx, state.UserInput, updatedDecisions, userID)
	if err != nil {
		return nil, err
	}
	return &domain.GameGenerationState{
		UserInput:    state.UserInput,
		Decisions:    updatedDecisions,
		CurrentLevel: domain.MaxDecisionLevels,
		IsComplete:   true,
		FinalGame:    finalGame,
	}, nil
}

// finalGamePayload - форма ответа модели на промт финальной сборки.
type finalGamePayload struct {
	Goal     domain.Goal      `json:"goal"`
	SubGoals []subGoalPayload `json:"sub_goals"`
	Theme    domain.Theme     `json:"theme"`
	Rewards  struct {
		CurrencyName string         `json:"currency_name"`
		BadgeIdeas   []domain.Badge `json:"badge_ideas"`
	} `json:"rewards"`
}

// decisionPoints переводит пройденные шаги дерева в точки выбора игры:
// на каждый шаг - запись с заголовками всех предложенных вариантов.
func decisionPoints(decisions []domain.DecisionLevel) []domain.DecisionPoint {
	points := make([]domain.DecisionPoint, 0, len(decisions))
	for _, d := range decisions {
		titles := make([]string, 0, len(d.Options))
		for _, o := range d.Options {
			titles = append(titles, o.Title)
		}
		points = append(points, domain.DecisionPoint{
			ID:          fmt.Sprintf("decision_%d", d.Level),
			Description: d.Title,
			Options:     titles,
		})
	}
	return points
}

// generateFinalGame собирает финальную игру по итогам всех решений.
// Невалидный ответ модели деградирует до полностью резервной игры.
func (g *DecisionTreeGenerator) generateFinalGame(
	ctx context.Context,
	input domain.UserInput,
	decisions []domain.DecisionLevel,
	userID string,
) (*domain.GamifiedGame, error) {
	rawResponse, err := g.aiClient.GenerateText(ctx, userID, buildFinalGamePrompt(input, decisions), TemperatureStructured)
	if err != nil {
		return nil, fmt.Errorf("final game generation: %w", err)
	}

	content := ExtractJSONContent(rawResponse)
	if content == "" {
		g.logger.Warn("Failed to extract final game JSON, using fallback game",
			zap.String("user_id", userID))
		return g.fallbackGame(input, decisions, userID), nil
	}

	var payload finalGamePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		g.logger.Warn("Failed to parse final game from model response, using fallback game",
			zap.String("user_id", userID),
			zap.Error(err))
		return g.fallbackGame(input, decisions, userID), nil
	}

	subGoals := coerceSubGoals(payload.SubGoals)
	if len(subGoals) == 0 {
		g.logger.Warn("Final game has no usable sub-goals, using fallback game",
			zap.String("user_id", userID))
		return g.fallbackGame(input, decisions, userID), nil
	}

	xpPerLevel, rewardTiers := calculateLevels(subGoals, TotalLevels)
	totalXP := 0
	for _, sg := range subGoals {
		totalXP += sg.XP
	}

	game := &domain.GamifiedGame{
		Goal:     payload.Goal,
		SubGoals: subGoals,
		Rules:    defaultRules(),
		FeedbackSystem: domain.FeedbackSystem{
			XPBar:  domain.XPBar{Current: 0, Total: totalXP},
			Levels: domain.LevelProgress{Current: 1, Total: TotalLevels, XPPerLevel: xpPerLevel},
		},
		Rewards: domain.Rewards{
			CurrencyName: payload.Rewards.CurrencyName,
			RewardsTable: rewardTiers,
			Badges:       lockedBadges(payload.Rewards.BadgeIdeas),
		},
		ChallengeCurve: domain.ChallengeCurve{DifficultyPerStep: domain.DifficultyMedium},
		PlayerAgency: domain.PlayerAgency{
			DecisionPoints:     decisionPoints(decisions),
			CustomizableAssets: defaultCustomizableAssets(),
		},
		Theme:         payload.Theme,
		FeedbackLoops: defaultFeedbackLoops(),
		SocialLayer:   defaultSocialLayer(),
		Metadata: domain.GameMetadata{
			CreatedAt:       g.now().UTC().Format(time.RFC3339),
			UserID:          userID,
			InterestTheme:   input.InterestTheme,
			GoalDescription: input.GoalDescription,
		},
	}

	g.logger.Info("Final game generated from decision tree",
		zap.String("user_id", userID),
		zap.Int("sub_goals", len(subGoals)),
		zap.Int("total_xp", totalXP))
	return game, nil
}

// fallbackGame - полностью детерминированная игра на случай, когда
// финальную сборку не удалось получить от модели.
func (g *DecisionTreeGenerator) fallbackGame(input domain.UserInput, decisions []domain.DecisionLevel, userID string) *domain.GamifiedGame {
	subGoals := fallbackSubGoals()
	xpPerLevel, rewardTiers := calculateLevels(subGoals, TotalLevels)
	theme := fallbackTheme(input.InterestTheme)

	return &domain.GamifiedGame{
		Goal: domain.Goal{
			Title:           fmt.Sprintf("Complete: %s", input.GoalDescription),
			SuccessCriteria: "Complete all sub-goals and reach maximum level",
		},
		SubGoals: subGoals,
		Rules:    defaultRules(),
		FeedbackSystem: domain.FeedbackSystem{
			XPBar:  domain.XPBar{Current: 0, Total: 175},
			Levels: domain.LevelProgress{Current: 1, Total: TotalLevels, XPPerLevel: xpPerLevel},
		},
		Rewards: domain.Rewards{
			CurrencyName: theme.CurrencyName,
			RewardsTable: rewardTiers,
			Badges:       lockedBadges(theme.BadgeIdeas),
		},
		ChallengeCurve: domain.ChallengeCurve{DifficultyPerStep: domain.DifficultyMedium},
		PlayerAgency: domain.PlayerAgency{
			DecisionPoints:     decisionPoints(decisions),
			CustomizableAssets: defaultCustomizableAssets(),
		},
		Theme: domain.Theme{
			ThemeTitle:    theme.ThemeTitle,
			LoreBlurb:     theme.LoreBlurb,
			VisualPalette: theme.VisualPalette,
		},
		FeedbackLoops: defaultFeedbackLoops(),
		SocialLayer:   defaultSocialLayer(),
		Metadata: domain.GameMetadata{
			CreatedAt:       g.now().UTC().Format(time.RFC3339),
			UserID:          userID,
			InterestTheme:   input.InterestTheme,
			GoalDescription: input.GoalDescription,
		},
	}
}
