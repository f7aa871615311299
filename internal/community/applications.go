package community

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"basari/internal/database"
	"basari/internal/domain/accesscontrol"
	"basari/internal/domain/storage"
)

// SubmitApplication files a reviewer application for the caller. A visitor
// becomes an applicant until the application is decided.
func (s *Service) SubmitApplication(ctx context.Context, caller *Caller, motivation string) (*accesscontrol.Application, error) {
	if err := authorize(caller, accesscontrol.ActionSubmitApplication); err != nil {
		return nil, err
	}
	motivation = strings.TrimSpace(motivation)
	if n := utf8.RuneCountInString(motivation); n < accesscontrol.MinMotivationLength {
		return nil, invalid(fmt.Errorf("motivation has %d characters, need at least %d", n, accesscontrol.MinMotivationLength))
	}

	app := &accesscontrol.Application{
		UserID:     caller.ID,
		Motivation: motivation,
		Status:     accesscontrol.ApplicationPending,
	}
	err := s.tx.WithTx(ctx, func(r *storage.Repos) error {
		pending, err := r.AccessControl.HasPendingApplication(ctx, caller.ID)
		if err != nil {
			return err
		}
		if pending {
			return conflict("an application is already pending")
		}
		if err := r.AccessControl.CreateApplication(ctx, app); err != nil {
			if database.IsUniqueViolation(err) {
				return conflict("an application is already pending")
			}
			return err
		}
		if caller.Role == accesscontrol.RoleVisitor {
			return r.Users.SetRole(ctx, caller.ID, accesscontrol.RoleApplicant)
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return app, nil
}

// DecideApplication approves or rejects a pending application. Approval
// grants the reviewer role; rejection returns the user to visitor.
func (s *Service) DecideApplication(ctx context.Context, caller *Caller, applicationID int64, approve bool) (*accesscontrol.Application, error) {
	if err := authorize(caller, accesscontrol.ActionDecideApplication); err != nil {
		return nil, err
	}

	status, role := accesscontrol.ApplicationRejected, accesscontrol.RoleVisitor
	if approve {
		status, role = accesscontrol.ApplicationApproved, accesscontrol.RoleReviewer
	}

	var out *accesscontrol.Application
	err := s.tx.WithTx(ctx, func(r *storage.Repos) error {
		app, err := r.AccessControl.LockApplication(ctx, applicationID)
		if err != nil {
			return err
		}
		if app.Status != accesscontrol.ApplicationPending {
			return conflict("application %d is already %s", app.ID, app.Status)
		}
		if err := r.AccessControl.SetApplicationStatus(ctx, app.ID, status, caller.ID); err != nil {
			return err
		}
		if err := r.Users.SetRole(ctx, app.UserID, role); err != nil {
			return err
		}
		app.Status = status
		app.DecidedBy = &caller.ID
		out = app
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *Service) ListApplications(ctx context.Context, caller *Caller, status accesscontrol.ApplicationStatus) ([]accesscontrol.Application, error) {
	if err := authorize(caller, accesscontrol.ActionDecideApplication); err != nil {
		return nil, err
	}
	switch status {
	case accesscontrol.ApplicationPending, accesscontrol.ApplicationApproved, accesscontrol.ApplicationRejected:
	default:
		return nil, invalid(fmt.Errorf("unknown application status %q", status))
	}
	return s.repos.AccessControl.ListApplications(ctx, status)
}

// AssignRole sets a user's role directly.
func (s *Service) AssignRole(ctx context.Context, caller *Caller, userID int64, role accesscontrol.Role) error {
	if err := authorize(caller, accesscontrol.ActionAssignRole); err != nil {
		return err
	}
	if !role.AtLeast(accesscontrol.RoleVisitor) || role > accesscontrol.RoleAdmin {
		return invalid(fmt.Errorf("%w: %d", accesscontrol.ErrUnknownRole, int(role)))
	}
	return notFound(s.repos.Users.SetRole(ctx, userID, role))
}
