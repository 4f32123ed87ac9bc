// Package authz is the authorization capability injected into the HTTP
// layer. A Gate is a registry of policies keyed by resource type. Services
// never consult it.
package authz

import (
	"context"
	"errors"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

// ErrNoPolicyDefined is returned when a resource type has no registered policy.
var ErrNoPolicyDefined = errors.New("authz: no policy defined for resource type")

// Action names an operation on a resource type.
type Action string

// Subject is the authenticated caller.
type Subject struct {
	UserID   string
	IsAdmin  bool
	IsDoctor bool
}

// SubjectOf builds the Subject for an authenticated user.
func SubjectOf(u *domain.User) Subject {
	if u == nil {
		return Subject{}
	}
	return Subject{UserID: u.ID, IsAdmin: u.IsAdmin, IsDoctor: u.IsDoctor}
}

// Policy defines authorization rules for a resource type. For collection
// actions resource may be nil.
type Policy interface {
	Can(ctx context.Context, s Subject, action Action, resource any) bool
}

// Gate is the central authorization checkpoint.
type Gate struct {
	policies map[string]Policy
}

// NewGate creates an empty Gate.
func NewGate() *Gate {
	return &Gate{policies: make(map[string]Policy)}
}

// Register adds or replaces the policy for resourceType.
func (g *Gate) Register(resourceType string, p Policy) {
	g.policies[resourceType] = p
}

// Authorize returns nil when s may perform action. An anonymous subject
// yields domain.ErrUnauthorized, a denial domain.ErrForbidden.
func (g *Gate) Authorize(ctx context.Context, s Subject, action Action, resourceType string, resource any) error {
	if s.UserID == "" {
		return domain.ErrUnauthorized
	}
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, s, action, resource) {
		return domain.ErrForbidden
	}
	return nil
}

// Can reports whether Authorize would succeed.
func (g *Gate) Can(ctx context.Context, s Subject, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, s, action, resourceType, resource) == nil
}
