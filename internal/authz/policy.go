package authz

import "context"

// Rule decides a single action.
type Rule func(s Subject, resource any) bool

// Rules is a Policy built from one Rule per action. Unlisted actions are denied.
type Rules map[Action]Rule

// Can implements Policy.
func (r Rules) Can(_ context.Context, s Subject, action Action, resource any) bool {
	rule, ok := r[action]
	if !ok {
		return false
	}
	return rule(s, resource)
}

// Anyone allows every authenticated subject.
func Anyone(Subject, any) bool { return true }

// AdminOnly allows admins.
func AdminOnly(s Subject, _ any) bool { return s.IsAdmin }

// SelfOrAdmin allows admins and the subject whose ID is the resource. The
// resource is the owning user ID as a string.
func SelfOrAdmin(s Subject, resource any) bool {
	if s.IsAdmin {
		return true
	}
	owner, ok := resource.(string)
	return ok && owner != "" && owner == s.UserID
}

// Resource types and actions used by the API.
const (
	ResourceUser        = "user"
	ResourceAppointment = "appointment"
	ResourceDoctor      = "doctor"

	ActionList         Action = "list"
	ActionView         Action = "view"
	ActionDelete       Action = "delete"
	ActionBook         Action = "book"
	ActionUpdateStatus Action = "update-status"
	ActionApply        Action = "apply"
	ActionChangeStatus Action = "change-status"
)

// NewDefaultGate returns the gate with the booking application's rules:
// admins moderate everything, users reach their own records.
func NewDefaultGate() *Gate {
	g := NewGate()
	g.Register(ResourceUser, Rules{
		ActionList:   AdminOnly,
		ActionView:   SelfOrAdmin,
		ActionDelete: AdminOnly,
	})
	g.Register(ResourceAppointment, Rules{
		ActionList:         SelfOrAdmin,
		ActionBook:         SelfOrAdmin,
		ActionUpdateStatus: AdminOnly,
	})
	g.Register(ResourceDoctor, Rules{
		ActionList:         AdminOnly,
		ActionView:         Anyone,
		ActionApply:        Anyone,
		ActionChangeStatus: AdminOnly,
	})
	return g
}
