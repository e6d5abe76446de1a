// Package viewer shows the rendered figure to the user.
package viewer

import "image"

// ReloadFunc re-reads the input and renders a fresh image.
type ReloadFunc func() (image.Image, error)

// Viewer displays an image, blocking until the user is done with it.
type Viewer interface {
	Show(title string, img image.Image, reload ReloadFunc) error
}

// Nop skips display entirely, for headless runs.
type Nop struct{}

func (Nop) Show(string, image.Image, ReloadFunc) error { return nil }
