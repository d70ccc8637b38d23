// Package export рендерит игру в PDF-лист: цель, квесты, уровни и награды
// на одной-двух страницах для печати.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"gamify-server/internal/domain"
)

const (
	pageMargin  = 15.0
	lineHeight  = 6.0
	titleSize   = 18.0
	headingSize = 13.0
	bodySize    = 10.0
)

// PDFExporter пишет игру в PDF.
type PDFExporter struct{}

// NewPDFExporter создает экспортер.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func sectionHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", headingSize)
	pdf.CellFormat(0, lineHeight+2, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", bodySize)
}

func bulletLine(pdf *gofpdf.Fpdf, text string) {
	pdf.MultiCell(0, lineHeight, "- "+text, "", "L", false)
}

// WriteGame рендерит игру и пишет готовый документ в w.
func (e *PDFExporter) WriteGame(w io.Writer, game *domain.GamifiedGame) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	// Заголовок: тема и цель.
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.MultiCell(0, lineHeight+4, game.Theme.ThemeTitle, "", "C", false)
	pdf.SetFont("Helvetica", "I", bodySize)
	pdf.MultiCell(0, lineHeight, game.Theme.LoreBlurb, "", "C", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", bodySize)
	pdf.MultiCell(0, lineHeight, game.Goal.Title, "", "L", false)
	if game.Goal.SuccessCriteria != "" {
		pdf.MultiCell(0, lineHeight, fmt.Sprintf("Success: %s", game.Goal.SuccessCriteria), "", "L", false)
	}

	sectionHeading(pdf, "Quests")
	for _, sg := range game.SubGoals {
		line := fmt.Sprintf("%s (%d XP)", sg.Description, sg.XP)
		if sg.DueDate != nil && *sg.DueDate != "" {
			line += fmt.Sprintf(", due %s", *sg.DueDate)
		}
		bulletLine(pdf, line)
	}
	pdf.SetFont("Helvetica", "I", bodySize)
	pdf.CellFormat(0, lineHeight,
		fmt.Sprintf("Total: %d XP across %d quests", game.FeedbackSystem.XPBar.Total, len(game.SubGoals)),
		"", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", bodySize)

	sectionHeading(pdf, "Levels")
	for _, tier := range game.Rewards.RewardsTable {
		bulletLine(pdf, fmt.Sprintf("Level %d at %d XP: %s",
			tier.Level, tier.XPRequired, strings.Join(tier.Rewards, ", ")))
	}

	sectionHeading(pdf, fmt.Sprintf("Rewards (%s)", game.Rewards.CurrencyName))
	for _, badge := range game.Rewards.Badges {
		bulletLine(pdf, fmt.Sprintf("%s: %s", badge.Name, badge.Description))
	}

	sectionHeading(pdf, "Rules")
	for _, rule := range game.Rules.ActionsAllowed {
		bulletLine(pdf, rule)
	}

	if len(game.PlayerAgency.DecisionPoints) > 0 {
		sectionHeading(pdf, "Your Choices")
		for _, dp := range game.PlayerAgency.DecisionPoints {
			bulletLine(pdf, fmt.Sprintf("%s: %s", dp.Description, strings.Join(dp.Options, " / ")))
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", bodySize-2)
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Generated %s", game.Metadata.CreatedAt), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf output: %w", err)
	}
	return nil
}
