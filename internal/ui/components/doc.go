// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the chatterm TUI.

Each component is a plain struct with a View method styled through a
*styles.Theme. None of them own conversation state; the chat model feeds
them snapshots on every render.

# Components

Header (header.go) - Title bar with the backend URL.
StatusBar (statusbar.go) - Connectivity indicator and keyboard hints.
CharCounter (charcount.go) - Draft length indicator with warning and error bands.
MessageBubble (message.go) - One rendered transcript entry with an HH:MM timestamp.
Welcome (welcome.go) - Panel shown while the transcript is empty.
NotificationCenter (notification.go) - Dismissible error notifications.

# Usage

	theme := styles.NewTheme()
	counter := components.NewCharCounter(theme, 2000)
	line := counter.View(len([]rune(draft)))
*/
package components
