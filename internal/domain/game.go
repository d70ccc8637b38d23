package domain

// Статусы квестов (sub-goals).
const (
	SubGoalStatusPending    = "pending"
	SubGoalStatusInProgress = "in_progress"
	SubGoalStatusCompleted  = "completed"
	SubGoalStatusFailed     = "failed"
)

// Уровни сложности для challenge_curve.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Goal описывает конечную цель пользователя в терминах игры.
type Goal struct {
	Title           string  `json:"title"`
	SuccessCriteria string  `json:"success_criteria"`
	Deadline        *string `json:"deadline,omitempty"`
}

// SubGoal - один квест. XP приходит от модели и не ограничивается в коде,
// диапазон 10-100 задается только инструкцией в промте.
type SubGoal struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	XP          int     `json:"xp"`
	DueDate     *string `json:"due_date,omitempty"`
	Status      string  `json:"status"`
}

// Rules - статический набор правил игры.
type Rules struct {
	ActionsAllowed []string `json:"actions_allowed"`
	FailConditions []string `json:"fail_conditions"`
	TimeLimits     []string `json:"time_limits,omitempty"`
}

// XPBar отражает текущий/общий прогресс по опыту.
type XPBar struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// LevelProgress описывает систему уровней: всегда 5 уровней,
// xp_per_level = ceil(total_xp / 5).
type LevelProgress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	XPPerLevel int `json:"xp_per_level"`
}

// Metrics - дополнительные показатели обратной связи.
type Metrics struct {
	Streaks        int     `json:"streaks"`
	CompletionRate float64 `json:"completion_rate"`
}

// FeedbackSystem объединяет все механики прогресса.
type FeedbackSystem struct {
	XPBar   XPBar         `json:"xp_bar"`
	Levels  LevelProgress `json:"levels"`
	Metrics Metrics       `json:"metrics"`
}

// RewardTier - строка таблицы наград: порог опыта и награды уровня.
type RewardTier struct {
	Level      int      `json:"level"`
	XPRequired int      `json:"xp_required"`
	Rewards    []string `json:"rewards"`
}

// Badge - значок достижения, изначально заблокирован.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// Rewards - тематическая валюта, таблица наград и значки.
type Rewards struct {
	CurrencyName string       `json:"currency_name"`
	RewardsTable []RewardTier `json:"rewards_table"`
	Badges       []Badge      `json:"badges"`
}

// ChallengeCurve задает сложность игры.
type ChallengeCurve struct {
	DifficultyPerStep string `json:"difficulty_per_step"`
}

// DecisionPoint - точка выбора игрока, попадает в player_agency.
// Для игр, собранных через дерево решений, на каждый пройденный
// уровень создается одна запись с заголовками предложенных опций.
type DecisionPoint struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

// CustomizableAsset - настраиваемый игроком элемент оформления.
type CustomizableAsset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// PlayerAgency описывает пространство выбора игрока.
type PlayerAgency struct {
	DecisionPoints     []DecisionPoint     `json:"decision_points"`
	CustomizableAssets []CustomizableAsset `json:"customizable_assets"`
}

// VisualPalette - три цвета темы в hex.
type VisualPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Theme - сгенерированная тема оформления игры.
type Theme struct {
	ThemeTitle    string        `json:"theme_title"`
	LoreBlurb     string        `json:"lore_blurb"`
	VisualPalette VisualPalette `json:"visual_palette"`
}

// FeedbackLoops - основной и мета-цикл игры.
type FeedbackLoops struct {
	CoreLoop string `json:"core_loop"`
	MetaLoop string `json:"meta_loop,omitempty"`
}

// Leaderboard - настройки таблицы лидеров (для демо всегда private/off).
type Leaderboard struct {
	Enabled bool   `json:"enabled"`
	Type    string `json:"type"`
}

// SocialLayer - социальные механики.
type SocialLayer struct {
	Leaderboard *Leaderboard `json:"leaderboard,omitempty"`
	ShareURL    string       `json:"share_url,omitempty"`
}

// GameMetadata - служебный блок: время создания (ISO 8601), идентификатор
// пользователя и эхо исходного ввода.
type GameMetadata struct {
	CreatedAt       string `json:"created_at"`
	UserID          string `json:"user_id"`
	InterestTheme   string `json:"interest_theme"`
	GoalDescription string `json:"goal_description"`
}

// GamifiedGame - итоговый артефакт генерации. Создается один раз,
// после этого не изменяется; возвращается клиенту для отображения и экспорта.
type GamifiedGame struct {
	Goal           Goal           `json:"goal"`
	SubGoals       []SubGoal      `json:"sub_goals"`
	Rules          Rules          `json:"rules"`
	FeedbackSystem FeedbackSystem `json:"feedback_system"`
	Rewards        Rewards        `json:"rewards"`
	ChallengeCurve ChallengeCurve `json:"challenge_curve"`
	PlayerAgency   PlayerAgency   `json:"player_agency"`
	Theme          Theme          `json:"theme"`
	FeedbackLoops  FeedbackLoops  `json:"feedback_loops"`
	SocialLayer    *SocialLayer   `json:"social_layer,omitempty"`
	Metadata       GameMetadata   `json:"metadata"`
}

// TotalXP возвращает суммарный опыт по всем квестам.
func (g *GamifiedGame) TotalXP() int {
	total := 0
	for _, sg := range g.SubGoals {
		total += sg.XP
	}
	return total
}
