// Package app contains the core application logic. It defines the App
// struct, its configuration and the execution lifecycle, decoupled from any
// specific entrypoint like the CLI.
//
// NewApp builds the components in a fixed order: logger, configuration,
// schema, descriptor registry, document controller and inspector window.
// Each step depends only on the ones before it, and the front-ends started
// by Run come last.
package app
