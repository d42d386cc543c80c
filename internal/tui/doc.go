// Package tui is the terminal front-end of the inspector window, drawn with
// tcell.
//
// Keys: Tab and Shift-Tab switch tabs, Up and Down select a row, Left and
// Right cycle the allowed values of closed-choice rows, Enter edits the
// selected value inline (Enter commits, Esc cancels), Delete resets the value
// to its default, h hides or shows the window, and q, Esc or Ctrl-C quit.
package tui
