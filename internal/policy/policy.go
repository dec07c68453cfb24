// Package policy centralises the platform's authorization decisions as pure
// capability checks over (principal, resource). Handlers and services call
// these instead of scattering role comparisons inline.
//
// Authorization rules:
//   - Admins moderate everything except hard event deletion.
//   - Managers act only on events they organize.
//   - Regular users act only on their own account and registrations.
package policy

import "github.com/rahulnair-dev/event-platform/internal/model"

// CanCreateEvent reports whether the principal may publish events.
// Managers and admins only.
func CanCreateEvent(p model.Principal) bool {
	return p.Role == model.RoleManager || p.Role == model.RoleAdmin
}

// CanManageEvent reports whether the principal may update the event or
// review its registrations. Organizer or admin.
func CanManageEvent(p model.Principal, e *model.Event) bool {
	return p.UserID == e.OrganizerID || p.IsAdmin()
}

// CanDeactivateEvent reports whether the principal may soft-disable the
// event. Admin strictly: organizers cannot deactivate their own events.
func CanDeactivateEvent(p model.Principal) bool {
	return p.IsAdmin()
}

// CanDeleteEvent reports whether the principal may hard-delete the event.
// Organizer strictly: admins moderate via deactivation, never deletion.
func CanDeleteEvent(p model.Principal, e *model.Event) bool {
	return p.UserID == e.OrganizerID
}

// CanRegister reports whether the principal may register for the event.
// Organizers cannot register for their own events.
func CanRegister(p model.Principal, e *model.Event) bool {
	return p.UserID != e.OrganizerID
}

// CanCancelRegistration reports whether the principal may cancel the
// registration. Registrant only.
func CanCancelRegistration(p model.Principal, r *model.Registration) bool {
	return p.UserID == r.UserID
}

// CanManageUsers reports whether the principal may list users and decide
// manager-upgrade requests. Admin only.
func CanManageUsers(p model.Principal) bool {
	return p.IsAdmin()
}

// CanDeactivateUser reports whether the principal may soft-disable the
// target account. Admin only, and never their own account.
func CanDeactivateUser(p model.Principal, targetID int64) bool {
	return p.IsAdmin() && p.UserID != targetID
}
