// Package authz holds the authorization rules of the API: which role may reach
// an endpoint and which records a user owns.
package authz

import (
	apperrors "hwstars/internal/errors"
	"hwstars/internal/model"
)

// Policy declares who may call an endpoint.
type Policy struct {
	// Public endpoints skip every check.
	Public bool
	// Role restricts the endpoint to one role. Empty means any signed-in user.
	Role model.Role
}

var (
	// Public lets anyone through.
	Public = Policy{Public: true}
	// Authenticated requires a valid session of any role.
	Authenticated = Policy{}
	// TeacherOnly requires a teacher session.
	TeacherOnly = Policy{Role: model.RoleTeacher}
	// StudentOnly requires a student session.
	StudentOnly = Policy{Role: model.RoleStudent}
)

// Check evaluates the policy for user, which is nil when no valid session was
// presented. Role-restricted endpoints answer Forbidden even for anonymous
// callers; endpoints open to any role answer Unauthenticated.
func (p Policy) Check(user *model.User) error {
	if p.Public {
		return nil
	}
	if p.Role != "" {
		return Authorize(user, p.Role)
	}
	if user == nil {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// Authorize fails with ErrForbidden if user is absent or does not have role.
func Authorize(user *model.User, role model.Role) error {
	if user == nil || user.Role != role {
		return apperrors.ErrForbidden
	}
	return nil
}

// OwnsHomework reports whether user authored hw.
func OwnsHomework(user *model.User, hw *model.Homework) bool {
	return user != nil && hw != nil && user.IsTeacher() && hw.TeacherID == user.ID
}

// CanSeeHomework: teachers see their own homeworks, students see all of them.
func CanSeeHomework(user *model.User, hw *model.Homework) bool {
	if user.IsStudent() {
		return true
	}
	return OwnsHomework(user, hw)
}

// CanSeeSubmission: teachers see submissions to homeworks they authored,
// students see their own.
func CanSeeSubmission(user *model.User, sub *model.Submission, hw *model.Homework) bool {
	if user == nil || sub == nil {
		return false
	}
	if user.IsStudent() {
		return sub.StudentID == user.ID
	}
	return OwnsHomework(user, hw)
}
