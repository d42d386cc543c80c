// Package config defines the format-agnostic configuration model for the
// inspector, along with the Loader interface that produces it.
//
// The Model is the single source of settings for the app package. Command
// line flags are applied on top of it by the app. Concrete loaders, such as
// the HCL one, live in separate packages.
package config
