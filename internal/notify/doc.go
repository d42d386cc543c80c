// Package notify follows an editor that announces document switches over
// socket.io. Each "document_changed" event names a DOT file; the file is
// loaded and made current on the document controller.
package notify
