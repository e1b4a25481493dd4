// Package ui provides the composition primitives the swipe menu and its demo
// host are built from.
//
// Core abstractions:
//   - View: a region with its own model, update and view (Elm-style); pages are Views
//   - Panel: a named region whose bounds derive from the terminal size
//   - Layout: arranges panels and defines focus order
//   - FocusManager: tracks and rotates focus across panels
//   - OverlayStack: modal views dismissed by key
//   - KeybindRegistry / KeyHandler: SPC-leader key sequences
package ui
