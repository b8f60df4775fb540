package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/apodview/pkg/gallery"
	"github.com/rubiojr/apodview/pkg/overlay"
	"github.com/rubiojr/apodview/pkg/render"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 1, 2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32")).
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("32")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Margin(1, 0)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 2).
			Width(80)

	factStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("196")).
			PaddingLeft(1)
)

var titleCaser = cases.Title(language.English)

// formatGallery renders the gallery grid as terminal cards. A positive
// limit caps the number of cards shown.
func formatGallery(grid gallery.Grid, sourceName string, limit int) string {
	var output strings.Builder

	output.WriteString(titleStyle.Render("🔭 NASA Space Explorer"))
	output.WriteString("\n")

	if p := grid.Placeholder; p != nil {
		message := p.Message
		if p.Icon != "" {
			message = p.Icon + " " + message
		}
		if p.Error {
			output.WriteString(errorStyle.Render(message))
		} else {
			output.WriteString(noDataStyle.Render(message))
		}
		output.WriteString("\n")
		return output.String()
	}

	cards := grid.Cards
	if limit > 0 && len(cards) > limit {
		cards = cards[:limit]
	}

	summary := fmt.Sprintf("📊 %d of %d records from %s", len(cards), grid.Len(), sourceName)
	output.WriteString(summaryStyle.Render(summary))
	output.WriteString("\n")

	for _, card := range cards {
		output.WriteString(formatCard(card))
		output.WriteString("\n")
	}
	return output.String()
}

// formatCard formats a single gallery card
func formatCard(card gallery.Card) string {
	var content strings.Builder

	header := fmt.Sprintf("#%d  %s", card.Index, card.Title)
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(header))
	content.WriteString("\n")

	kind := string(card.MediaType)
	if kind == "" {
		kind = "unknown"
	}
	if card.Thumbnail.Play {
		kind += " ►"
	}
	content.WriteString(metaStyle.Render(fmt.Sprintf("%s | %s", card.Date, titleCaser.String(kind))))

	if card.Thumbnail.Src != "" {
		content.WriteString("\n" + urlStyle.Render("🔗 "+card.Thumbnail.Src))
	}

	return cardStyle.Render(content.String())
}

// formatDetail formats the detail overlay content.
func formatDetail(d overlay.Detail) string {
	var content strings.Builder

	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Render(d.Title))
	content.WriteString("\n")
	content.WriteString(metaStyle.Render(d.Date))
	content.WriteString("\n\n")

	if media := formatMedia(d.Media); media != "" {
		content.WriteString(media)
		content.WriteString("\n\n")
	}

	if d.Explanation != "" {
		content.WriteString(d.Explanation)
		content.WriteString("\n")
	}
	if d.Credit != "" {
		content.WriteString("\n")
		content.WriteString(metaStyle.Render(d.Credit))
	}

	return detailStyle.Render(content.String())
}

func formatMedia(m render.Media) string {
	switch m.Kind {
	case render.MediaImage:
		return urlStyle.Render("🖼  " + m.Src)
	case render.MediaEmbed:
		return urlStyle.Render("▶  " + m.Src + " (embedded player)")
	case render.MediaLink:
		return urlStyle.Render("🔗 " + m.Label + ": " + m.Src)
	default:
		return ""
	}
}

// formatFact formats one space fact.
func formatFact(fact string) string {
	return factStyle.Render("Did you know? " + fact)
}

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// printOutput writes content through a pager when stdout is a terminal.
func printOutput(content string, noPager bool) error {
	if noPager || !isTerminal() {
		fmt.Print(content)
		return nil
	}
	return displayWithPager(content)
}

// pagerCommand returns $PAGER or the first available of less and more.
func pagerCommand() (string, []string) {
	if pager := os.Getenv("PAGER"); pager != "" {
		return pager, nil
	}
	for _, pager := range []string{"less", "more"} {
		if _, err := exec.LookPath(pager); err != nil {
			continue
		}
		if pager == "less" {
			// -F quits right away when the gallery fits on one screen.
			return pager, []string{"-R", "-S", "-F", "-X"}
		}
		return pager, nil
	}
	return "", nil
}

// displayWithPager pipes content into the pager, printing it directly when
// none is installed.
func displayWithPager(content string) error {
	name, args := pagerCommand()
	if name == "" {
		fmt.Print(content)
		return nil
	}
	pager := exec.Command(name, args...)
	pager.Stdin = strings.NewReader(content)
	pager.Stdout = os.Stdout
	pager.Stderr = os.Stderr
	if err := pager.Run(); err != nil {
		return fmt.Errorf("running pager %s: %w", name, err)
	}
	return nil
}
