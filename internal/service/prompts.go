package service

import (
	"encoding/json"
	"fmt"

	"gamify-server/internal/domain"
)

// Температуры генерации. Для структурных шагов (квесты, финальная сборка)
// используется более низкая температура, для креативных (тема, варианты
// выбора) - более высокая.
const (
	TemperatureStructured float32 = 0.7
	TemperatureCreative   float32 = 0.8
)

// buildSubGoalsPrompt - промт разбиения цели на квесты.
func buildSubGoalsPrompt(goalDescription string) string {
	return fmt.Sprintf(`Break the user goal into 3-7 quests.

Goal: %s

Return ONLY a valid JSON array with this exact structure (no additional text, no markdown formatting):
[
  {
    "id": "unique_id",
    "description": "Clear, actionable step",
    "xp": number,
    "due_date": "optional_date",
    "status": "pending"
  }
]

Make sure each sub-goal is:
- Specific and actionable
- Ordered logically
- Has appropriate XP values (10-100 per quest)
- Covers the entire goal comprehensively

Ensure the response is ONLY valid JSON.`, goalDescription)
}

// buildThemePrompt - промт генерации темы оформления.
func buildThemePrompt(interestTheme string) string {
	return fmt.Sprintf(`Generate a game theme around "%s".

Interest Theme: %s

Return ONLY a valid JSON object with this exact structure (no additional text, no markdown formatting):
{
  "theme_title": "Creative theme name",
  "lore_blurb": "2-3 sentences of theme background",
  "visual_palette": {
    "primary": "#hex_color",
    "secondary": "#hex_color",
    "accent": "#hex_color"
  },
  "currency_name": "themed currency name",
  "badge_ideas": [
    {
      "id": "badge_id",
      "name": "Badge name",
      "description": "What this badge represents"
    }
  ]
}

Make the theme engaging and relevant to the interest theme. Ensure the response is ONLY valid JSON.`, interestTheme, interestTheme)
}

// decisionLevelMeta - заголовок и описание шага дерева решений.
// Используется и в промте, и как резервное значение при сбое генерации.
type decisionLevelMeta struct {
	Title       string
	Description string
}

var decisionLevelMetas = map[int]decisionLevelMeta{
	1: {Title: "Choose Your Game Style", Description: "What type of gamification experience do you want?"},
	2: {Title: "Select Your Progress System", Description: "How do you want to track your advancement?"},
	3: {Title: "Pick Your Reward Structure", Description: "What motivates you most?"},
	4: {Title: "Choose Your Challenge Level", Description: "How difficult do you want this to be?"},
}

// summarizeDecisions сериализует пройденные шаги в компактный JSON
// для подстановки в промт: номер уровня и выбранный вариант.
func summarizeDecisions(decisions []domain.DecisionLevel) string {
	type decisionSummary struct {
		Level    int    `json:"level"`
		Selected string `json:"selected"`
	}
	summary := make([]decisionSummary, 0, len(decisions))
	for _, d := range decisions {
		summary = append(summary, decisionSummary{Level: d.Level, Selected: d.SelectedOption})
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// optionsSchema возвращает JSON-заготовку вариантов для промта уровня.
func optionsSchema(idPrefix, titleHint, descHint, previewHint string) string {
	return fmt.Sprintf(`  "options": [
    {
      "id": "%s_1",
      "title": "%s",
      "description": "%s",
      "preview": "%s"
    },
    {
      "id": "%s_2",
      "title": "%s",
      "description": "%s",
      "preview": "%s"
    }
  ]`, idPrefix, titleHint, descHint, previewHint, idPrefix, titleHint, descHint, previewHint)
}

// buildDecisionLevelPrompt собирает промт для шага дерева решений.
// Для уровней 2-4 в промт включаются уже сделанные выборы.
func buildDecisionLevelPrompt(level int, input domain.UserInput, previousDecisions []domain.DecisionLevel) (string, error) {
	meta, ok := decisionLevelMetas[level]
	if !ok {
		return "", fmt.Errorf("%w: %d", domain.ErrInvalidDecisionLevel, level)
	}

	var intro, options string
	switch level {
	case 1:
		intro = fmt.Sprintf(`Based on the goal "%s" and interest "%s", generate 2 different game styles.`,
			input.GoalDescription, input.InterestTheme)
		options = optionsSchema("style", "Style Name", "Brief description of this style", "What this style would look like")
	case 2:
		intro = fmt.Sprintf(`Based on the previous choice and the goal "%s", generate 2 different progress tracking systems.

Previous decisions: %s`, input.GoalDescription, summarizeDecisions(previousDecisions))
		options = optionsSchema("progress", "System Name", "How this progress system works", "What tracking would look like")
	case 3:
		intro = fmt.Sprintf(`Based on the previous choices and goal "%s", generate 2 different reward structures.

Previous decisions: %s`, input.GoalDescription, summarizeDecisions(previousDecisions))
		options = optionsSchema("rewards", "Reward Type", "What this reward system offers", "Examples of rewards you'd get")
	case 4:
		intro = fmt.Sprintf(`Based on all previous choices and goal "%s", generate 2 different difficulty approaches.

Previous decisions: %s`, input.GoalDescription, summarizeDecisions(previousDecisions))
		options = optionsSchema("difficulty", "Difficulty Level", "What this difficulty means", "What the experience would be like")
	}

	prompt := fmt.Sprintf(`%s

Return ONLY a valid JSON object with this structure:
{
  "title": "%s",
  "description": "%s",
%s
}`, intro, meta.Title, meta.Description, options)

	return prompt, nil
}

// buildFinalGamePrompt - промт финальной сборки игры по итогам дерева решений.
func buildFinalGamePrompt(input domain.UserInput, decisions []domain.DecisionLevel) string {
	return fmt.Sprintf(`Generate a complete gamification system based on the user's choices.

Goal: %s
Interest Theme: %s
User Decisions: %s

Return ONLY a valid JSON object with this exact structure:
{
  "goal": {
    "title": "Goal title",
    "success_criteria": "What success looks like",
    "deadline": null
  },
  "sub_goals": [
    {
      "id": "quest_1",
      "description": "Clear, actionable step",
      "xp": 25,
      "status": "pending"
    }
  ],
  "theme": {
    "theme_title": "Creative theme name",
    "lore_blurb": "2-3 sentences of theme background",
    "visual_palette": {
      "primary": "#3B82F6",
      "secondary": "#1E40AF",
      "accent": "#F59E0B"
    }
  },
  "rewards": {
    "currency_name": "themed currency name",
    "badge_ideas": [
      {
        "id": "badge_1",
        "name": "Badge name",
        "description": "What this badge represents"
      }
    ]
  }
}

Make sure the final game incorporates all the user's choices from the decision tree.`,
		input.GoalDescription, input.InterestTheme, summarizeDecisions(decisions))
}
