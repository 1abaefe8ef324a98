// Package authz holds the access policy for the feedback API. Every
// function is a pure decision over the authenticated caller and the
// target record: nil means allow, otherwise the sentinel names the
// denial reason. Services must consult these before any state change.
package authz

import (
	errs "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// CanViewTeam allows managers to list their direct reports.
func CanViewTeam(caller *model.User) error {
	if caller.Role != model.RoleManager {
		return errs.ErrNotAManager
	}
	return nil
}

// CanCreateFeedback allows a manager to author feedback about employee.
// employee is the resolved target, or nil when the lookup missed; a
// missing employee denies with the same reason as a cross-team one.
func CanCreateFeedback(caller *model.User, employee *model.User) error {
	if caller.Role != model.RoleManager {
		return errs.ErrNotAManager
	}
	if employee == nil || employee.ManagerID == nil || *employee.ManagerID != caller.ID {
		return errs.ErrNotOnTeam
	}
	return nil
}

// CanEditFeedback allows only the authoring manager to change content.
func CanEditFeedback(caller *model.User, fb *model.Feedback) error {
	if fb.ManagerID != caller.ID {
		return errs.ErrNotFeedbackOwner
	}
	return nil
}

// CanAcknowledge allows only the subject employee to acknowledge.
func CanAcknowledge(caller *model.User, fb *model.Feedback) error {
	if fb.EmployeeID != caller.ID {
		return errs.ErrNotFeedbackSubject
	}
	return nil
}

// CanViewManagerFeedback allows managers to list feedback they authored.
func CanViewManagerFeedback(caller *model.User) error {
	if caller.Role != model.RoleManager {
		return errs.ErrNotAManager
	}
	return nil
}

// CanViewManagerDashboard allows managers to view the team dashboard.
func CanViewManagerDashboard(caller *model.User) error {
	if caller.Role != model.RoleManager {
		return errs.ErrNotAManager
	}
	return nil
}
