// Package lifecycle provides component lifecycle management for Go applications.
//
// It defines interfaces and utilities for managing the startup and shutdown
// lifecycle of application components.
package lifecycle
