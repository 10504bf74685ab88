// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package guard decides whether a navigation may proceed or must be sent to
// the login page.
package guard

import (
	"DemoLab/DemoServer/session"
)

// Action is the outcome of a guard check.
type Action int

const (
	Allow Action = iota
	Redirect
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of one guard check. Location is set only for
// Redirect.
type Decision struct {
	Action   Action
	Location string
}

// Redirected reports whether the navigation must be redirected.
func (d Decision) Redirected() bool {
	return d.Action == Redirect
}

// Rules names the protected path and where guests are sent instead.
type Rules struct {
	ProtectedPath string
	LoginPath     string
}

// DefaultRules protects /profile and sends guests to /login.
var DefaultRules = Rules{
	ProtectedPath: "/profile",
	LoginPath:     "/login",
}

// Decide checks a navigation to target made by user (nil for a guest).
// Paths are compared exactly.
func (r Rules) Decide(user *session.User, target string) Decision {
	if user == nil && target == r.ProtectedPath {
		return Decision{Action: Redirect, Location: r.LoginPath}
	}
	return Decision{Action: Allow}
}

// Decide applies DefaultRules.
func Decide(user *session.User, target string) Decision {
	return DefaultRules.Decide(user, target)
}
