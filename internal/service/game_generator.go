// Package service содержит доменную логику генерации: одношаговую сборку
// игры, дерево решений и извлечение JSON из ответов модели.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"gamify-server/internal/ai"
	"gamify-server/internal/domain"
)

// TotalLevels - число уровней в каждой игре.
const TotalLevels = 5

// GameGenerator собирает игру за один проход: квесты, тема, расчет уровней.
type GameGenerator struct {
	aiClient ai.AIClient
	logger   *zap.Logger
	now      func() time.Time
}

// NewGameGenerator создает генератор одношаговой сборки.
func NewGameGenerator(aiClient ai.AIClient, logger *zap.Logger) *GameGenerator {
	return &GameGenerator{
		aiClient: aiClient,
		logger:   logger.Named("GameGenerator"),
		now:      time.Now,
	}
}

// subGoalPayload - ослабленная форма квеста из ответа модели.
// XP принимается как число с плавающей точкой: модели иногда
// возвращают 25.0 вместо 25.
type subGoalPayload struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	XP          float64 `json:"xp"`
	DueDate     *string `json:"due_date,omitempty"`
	Status      string  `json:"status"`
}

// coerceSubGoals приводит сырые квесты к доменной форме: пустые id и
// статусы заполняются, дробный опыт округляется вниз. Квесты без
// описания отбрасываются.
func coerceSubGoals(payloads []subGoalPayload) []domain.SubGoal {
	subGoals := make([]domain.SubGoal, 0, len(payloads))
	for i, p := range payloads {
		if strings.TrimSpace(p.Description) == "" {
			continue
		}
		sg := domain.SubGoal{
			ID:          p.ID,
			Description: p.Description,
			XP:          int(p.XP),
			DueDate:     p.DueDate,
			Status:      p.Status,
		}
		if sg.ID == "" {
			sg.ID = fmt.Sprintf("quest_%d", i+1)
		}
		if sg.Status == "" {
			sg.Status = domain.SubGoalStatusPending
		}
		subGoals = append(subGoals, sg)
	}
	return subGoals
}

// fallbackSubGoals - резервный набор квестов на случай, когда из ответа
// модели не удалось извлечь валидный JSON.
func fallbackSubGoals() []domain.SubGoal {
	return []domain.SubGoal{
		{ID: "step_1", Description: "Start working on your goal", XP: 25, Status: domain.SubGoalStatusPending},
		{ID: "step_2", Description: "Make consistent progress", XP: 50, Status: domain.SubGoalStatusPending},
		{ID: "step_3", Description: "Complete your goal", XP: 100, Status: domain.SubGoalStatusPending},
	}
}

// generateSubGoals запрашивает у модели разбиение цели на квесты.
// Ошибка транспорта поднимается наверх; невалидный JSON в ответе
// деградирует до резервных квестов.
func (g *GameGenerator) generateSubGoals(ctx context.Context, userID, goalDescription string) ([]domain.SubGoal, error) {
	rawResponse, err := g.aiClient.GenerateText(ctx, userID, buildSubGoalsPrompt(goalDescription), TemperatureStructured)
	if err != nil {
		return nil, fmt.Errorf("sub-goals generation: %w", err)
	}

	content := ExtractJSONContent(rawResponse)
	if content != "" {
		var payloads []subGoalPayload
		if err := json.Unmarshal([]byte(content), &payloads); err == nil {
			if subGoals := coerceSubGoals(payloads); len(subGoals) > 0 {
				return subGoals, nil
			}
		}
	}

	g.logger.Warn("Failed to parse sub-goals from model response, using fallback",
		zap.String("user_id", userID),
		zap.Int("response_length", len(rawResponse)))
	return fallbackSubGoals(), nil
}

// themePayload - форма ответа модели на промт темы.
type themePayload struct {
	ThemeTitle    string               `json:"theme_title"`
	LoreBlurb     string               `json:"lore_blurb"`
	VisualPalette domain.VisualPalette `json:"visual_palette"`
	CurrencyName  string               `json:"currency_name"`
	BadgeIdeas    []domain.Badge       `json:"badge_ideas"`
}

// fallbackTheme - резервная тема на основе интереса пользователя.
func fallbackTheme(interestTheme string) themePayload {
	return themePayload{
		ThemeTitle: fmt.Sprintf("%s Adventure", interestTheme),
		LoreBlurb: fmt.Sprintf(
			"Embark on an exciting journey through the world of %s. Every step forward brings you closer to mastering your goals.",
			interestTheme),
		VisualPalette: domain.VisualPalette{
			Primary:   "#3B82F6",
			Secondary: "#1E40AF",
			Accent:    "#F59E0B",
		},
		CurrencyName: fmt.Sprintf("%s Points", interestTheme),
		BadgeIdeas: []domain.Badge{
			{ID: "first_step", Name: "First Steps", Description: "Complete your first quest"},
			{ID: "dedication", Name: "Dedication", Description: "Complete 5 quests in a row"},
			{ID: "mastery", Name: "Master", Description: "Reach the highest level"},
		},
	}
}

// generateTheme запрашивает у модели тему оформления игры.
func (g *GameGenerator) generateTheme(ctx context.Context, userID, interestTheme string) (themePayload, error) {
	rawResponse, err := g.aiClient.GenerateText(ctx, userID, buildThemePrompt(interestTheme), TemperatureCreative)
	if err != nil {
		return themePayload{}, fmt.Errorf("theme generation: %w", err)
	}

	content := ExtractJSONContent(rawResponse)
	if content != "" {
		var payload themePayload
		if err := json.Unmarshal([]byte(content), &payload); err == nil && payload.ThemeTitle != "" {
			return payload, nil
		}
	}

	g.logger.Warn("Failed to parse theme from model response, using fallback",
		zap.String("user_id", userID),
		zap.Int("response_length", len(rawResponse)))
	return fallbackTheme(interestTheme), nil
}

// calculateLevels строит таблицу уровней: опыт делится на равные пороги,
// последний порог покрывает весь суммарный опыт за счет округления вверх.
func calculateLevels(subGoals []domain.SubGoal, totalLevels int) (int, []domain.RewardTier) {
	totalXP := 0
	for _, sg := range subGoals {
		totalXP += sg.XP
	}
	xpPerLevel := int(math.Ceil(float64(totalXP) / float64(totalLevels)))

	tiers := make([]domain.RewardTier, 0, totalLevels)
	for i := 1; i <= totalLevels; i++ {
		tiers = append(tiers, domain.RewardTier{
			Level:      i,
			XPRequired: i * xpPerLevel,
			Rewards:    []string{fmt.Sprintf("Level %d Achievement", i)},
		})
	}
	return xpPerLevel, tiers
}

// defaultRules - статический набор правил, одинаковый для всех игр.
func defaultRules() domain.Rules {
	return domain.Rules{
		ActionsAllowed: []string{
			"Complete quests to earn XP",
			"Track progress on goals",
			"Earn badges for milestones",
			"Level up by accumulating XP",
		},
		FailConditions: []string{
			"Missing deadlines without extension",
			"Abandoning quests without restarting",
		},
		TimeLimits: []string{
			"Complete quests within their due dates",
			"Maintain consistent progress",
		},
	}
}

// defaultCustomizableAssets - стандартные настраиваемые элементы.
func defaultCustomizableAssets() []domain.CustomizableAsset {
	return []domain.CustomizableAsset{
		{ID: "theme_color", Name: "Theme Color", Type: "color"},
		{ID: "avatar", Name: "Player Avatar", Type: "avatar"},
	}
}

// defaultPlayerAgency - точки выбора для одношаговой генерации,
// где пользователь не проходил дерево решений.
func defaultPlayerAgency() domain.PlayerAgency {
	return domain.PlayerAgency{
		DecisionPoints: []domain.DecisionPoint{
			{
				ID:          "quest_order",
				Description: "Choose which quest to tackle first",
				Options:     []string{"Start with easiest", "Start with most important", "Start with shortest"},
			},
			{
				ID:          "reward_preference",
				Description: "What motivates you most?",
				Options:     []string{"Badges and achievements", "Level progression", "Story completion"},
			},
		},
		CustomizableAssets: defaultCustomizableAssets(),
	}
}

func defaultFeedbackLoops() domain.FeedbackLoops {
	return domain.FeedbackLoops{
		CoreLoop: "Complete quest → Earn XP → Level up → Unlock rewards → Continue to next quest",
		MetaLoop: "Weekly goal reviews and progress celebrations",
	}
}

func defaultSocialLayer() *domain.SocialLayer {
	return &domain.SocialLayer{
		Leaderboard: &domain.Leaderboard{Enabled: false, Type: "private"},
	}
}

// lockedBadges копирует значки, сбрасывая флаг unlocked.
func lockedBadges(badges []domain.Badge) []domain.Badge {
	result := make([]domain.Badge, 0, len(badges))
	for _, b := range badges {
		b.Unlocked = false
		result = append(result, b)
	}
	return result
}

// GenerateGame собирает полную игру за один проход: два запроса к модели
// (квесты и тема) плюс детерминированный расчет уровней и наград.
func (g *GameGenerator) GenerateGame(ctx context.Context, input domain.UserInput, userID string) (*domain.GamifiedGame, error) {
	g.logger.Info("Generating game",
		zap.String("user_id", userID),
		zap.String("interest_theme", input.InterestTheme))

	subGoals, err := g.generateSubGoals(ctx, userID, input.GoalDescription)
	if err != nil {
		return nil, err
	}

	theme, err := g.generateTheme(ctx, userID, input.InterestTheme)
	if err != nil {
		return nil, err
	}

	xpPerLevel, rewardTiers := calculateLevels(subGoals, TotalLevels)
	totalXP := 0
	for _, sg := range subGoals {
		totalXP += sg.XP
	}

	game := &domain.GamifiedGame{
		Goal: domain.Goal{
			Title:           fmt.Sprintf("Complete: %s", input.GoalDescription),
			SuccessCriteria: "Complete all sub-goals and reach maximum level",
		},
		SubGoals: subGoals,
		Rules:    defaultRules(),
		FeedbackSystem: domain.FeedbackSystem{
			XPBar:  domain.XPBar{Current: 0, Total: totalXP},
			Levels: domain.LevelProgress{Current: 1, Total: TotalLevels, XPPerLevel: xpPerLevel},
		},
		Rewards: domain.Rewards{
			CurrencyName: theme.CurrencyName,
			RewardsTable: rewardTiers,
			Badges:       lockedBadges(theme.BadgeIdeas),
		},
		ChallengeCurve: domain.ChallengeCurve{DifficultyPerStep: domain.DifficultyMedium},
		PlayerAgency:   defaultPlayerAgency(),
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

	g.logger.Info("Game generated",
		zap.String("user_id", userID),
		zap.Int("sub_goals", len(subGoals)),
		zap.Int("total_xp", totalXP))
	return game, nil
}
