package components

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/sous/internal/domain"
	"github.com/mmcdole/sous/internal/tui/styles"
)

// Card layout constants
const (
	// Interior lines: image ref, title, description, badge row
	CardInteriorLines = 4

	// CardHeight is the full rendered height including the border
	CardHeight = CardInteriorLines + 2

	// MinCardWidth below which the card degrades to title-only badges
	MinCardWidth = 16
)

// Card renders one recipe as a bordered card. It is a display component:
// it never mutates recipe state itself, it only reports clicks through
// the callbacks, each exactly once per activation.
type Card struct {
	Recipe     *domain.Recipe
	Width      int
	Selected   bool
	HideDelete bool
	OnBookmark func() tea.Msg
	OnDelete   func() tea.Msg
}

// FormatUpvotes renders a vote count for a badge. Counts below one
// thousand stay literal; larger ones round down to whole thousands.
func FormatUpvotes(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%dk", n/1000)
	}
	return strconv.Itoa(n)
}

// ClickBookmark reports a bookmark click. The new state arrives from
// above after the toggle round-trips through the store.
func (c Card) ClickBookmark() tea.Cmd {
	if c.OnBookmark == nil {
		return nil
	}
	cb := c.OnBookmark
	return func() tea.Msg { return cb() }
}

// ClickDelete reports a delete click. Hidden controls never fire.
func (c Card) ClickDelete() tea.Cmd {
	if c.HideDelete || c.OnDelete == nil {
		return nil
	}
	cb := c.OnDelete
	return func() tea.Msg { return cb() }
}

// RenderBookmark draws the bookmark control: a fixed-color outline frame
// around a fill glyph that takes the accent color only when saved.
func RenderBookmark(bookmarked bool) string {
	fill := styles.BookmarkOffStyle.Render(styles.BookmarkFillChar)
	if bookmarked {
		fill = styles.BookmarkOnStyle.Render(styles.BookmarkFillChar)
	}
	return styles.BookmarkOutlineStyle.Render(styles.BookmarkOutlineLeft) +
		fill +
		styles.BookmarkOutlineStyle.Render(styles.BookmarkOutlineRight)
}

// imageRef renders the image line: a glyph plus the file name, since the
// terminal shows no pictures
func imageRef(imageURL string, width int) string {
	if imageURL == "" {
		return styles.CardImageStyle.Render(styles.NoImageChar + " no image")
	}
	name := path.Base(imageURL)
	return styles.CardImageStyle.Render(styles.ImageChar + " " + styles.Truncate(name, width-2))
}

// View renders the card at its configured width
func (c Card) View() string {
	style := styles.CardStyle
	if c.Selected {
		style = styles.CardSelectedStyle
	}

	frameW, _ := style.GetFrameSize()
	inner := c.Width - frameW - 2 // one space of interior padding per side
	if inner < MinCardWidth-frameW {
		inner = MinCardWidth - frameW
	}

	lines := []string{
		imageRef(c.Recipe.ImageURL, inner),
		styles.CardTitleStyle.Render(styles.Truncate(c.Recipe.Title, inner)),
		styles.CardDescStyle.Render(styles.Truncate(c.Recipe.Summary(), inner)),
		c.badgeRow(inner),
	}

	content := " " + strings.Join(lines, "\n ")
	return style.Width(c.Width - frameW).Render(content)
}

// badgeRow renders duration and votes on the left, controls on the right
func (c Card) badgeRow(width int) string {
	duration := styles.DurationBadgeStyle.Render(" " + c.Recipe.DurationLabel() + " ")
	votes := styles.VoteBadgeStyle.Render(" ▲" + FormatUpvotes(c.Recipe.Upvotes) + " ")
	left := duration + " " + votes

	right := RenderBookmark(c.Recipe.Bookmarked)
	if !c.HideDelete {
		right += " " + styles.DeleteStyle.Render(styles.DeleteChar)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
