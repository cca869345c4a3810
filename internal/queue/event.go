// Package queue defines message payloads exchanged over the message broker.
package queue

import (
    "errors"
    "strings"
)

// ViewInvalidatedEvent is published after a successful invoice mutation.
// Every dashboard instance, and any cache in front of them, drops its copy
// of Path on receipt.  Origin identifies the publishing instance so that
// it can skip its own events.
type ViewInvalidatedEvent struct {
    Path          string `json:"path"`
    Origin        string `json:"origin"`
    InvalidatedAt string `json:"invalidated_at"`
}

// Validate rejects events that cannot name a route.
func (e ViewInvalidatedEvent) Validate() error {
    if !strings.HasPrefix(e.Path, "/") {
        return errors.New("event path must be an absolute route")
    }
    return nil
}
