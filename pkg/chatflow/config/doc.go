// Package config provides a typed-accessor wrapper over map[string]any.
//
// Flow node definitions arrive as untyped JSON attribute bags produced by
// the visual editor; Data gives each node kind a safe, default-tolerant view
// over its own keys without ad-hoc type assertions at every call site.
// The same wrapper backs YAML/JSON settings files via FromFile.
package config
