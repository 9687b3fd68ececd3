// Package components contains the self-contained bubbletea widgets of the transaction browser.
package components

import "github.com/Veraticus/txscope/internal/model"

// BackToListMsg requests to go back to the transaction list.
type BackToListMsg struct{}

// CopyRequestMsg asks the parent to copy Value to the clipboard.
type CopyRequestMsg struct {
	Label string
	Value string
}

// SubmitCreateMsg carries a validated creation request.
type SubmitCreateMsg struct {
	Request model.CreateRequest
}

// CancelCreateMsg closes the creation form without submitting.
type CancelCreateMsg struct{}
