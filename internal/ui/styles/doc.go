// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatterm TUI.
//
// All colors are lipgloss.AdaptiveColor values so the palette follows the
// terminal's light or dark background. Every status color is paired with an
// ASCII indicator ([OK], [X], [!]) so states stay readable without color.
//
// # Usage
//
//	theme := styles.NewTheme()
//	fmt.Println(theme.UserBubble.Render("hello"))
//	fmt.Println(styles.RenderError("Connection Failed"))
package styles
