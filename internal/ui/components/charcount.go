// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// =============================================================================
// CHARACTER COUNTER - Draft length indicator
// =============================================================================

// DefaultMaxChars is the draft length limit when none is configured.
const DefaultMaxChars = 2000

// Band thresholds as fractions of the limit. Both are strict.
const (
	WarningRatio = 0.75
	ErrorRatio   = 0.90
)

// Band classifies a draft length relative to the limit.
type Band int

const (
	BandNormal Band = iota
	BandWarning
	BandError
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandWarning:
		return "warning"
	case BandError:
		return "error"
	default:
		return "normal"
	}
}

// BandFor returns the band for length n against max.
// n > 90% of max is an error, n > 75% a warning.
func BandFor(n, max int) Band {
	if max <= 0 {
		return BandNormal
	}
	switch {
	case n*100 > max*int(ErrorRatio*100):
		return BandError
	case n*100 > max*int(WarningRatio*100):
		return BandWarning
	default:
		return BandNormal
	}
}

// CharCounter renders "N/max" colored by band.
type CharCounter struct {
	max   int
	theme *styles.Theme
}

// NewCharCounter creates a counter for the given limit.
func NewCharCounter(theme *styles.Theme, max int) *CharCounter {
	if max <= 0 {
		max = DefaultMaxChars
	}
	return &CharCounter{max: max, theme: theme}
}

// Max returns the configured limit.
func (c *CharCounter) Max() int {
	return c.max
}

// SetMax updates the limit. Non-positive values are ignored.
func (c *CharCounter) SetMax(max int) {
	if max > 0 {
		c.max = max
	}
}

// Text returns the unstyled counter text.
func (c *CharCounter) Text(n int) string {
	return strconv.Itoa(n) + "/" + strconv.Itoa(c.max)
}

// Band returns the band for n.
func (c *CharCounter) Band(n int) Band {
	return BandFor(n, c.max)
}

// View renders the counter for a draft of n characters.
func (c *CharCounter) View(n int) string {
	return c.style(c.Band(n)).Render(c.Text(n))
}

func (c *CharCounter) style(b Band) lipgloss.Style {
	if c.theme == nil {
		return lipgloss.NewStyle()
	}
	switch b {
	case BandError:
		return c.theme.CharCountDanger
	case BandWarning:
		return c.theme.CharCountWarning
	default:
		return c.theme.CharCount
	}
}
