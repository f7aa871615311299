package accesscontrol

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownRole         = errors.New("unknown role")
	ErrApplicationNotFound = errors.New("application not found")
)

// Role is a closed, totally ordered set of privilege levels.
type Role int

const (
	RoleVisitor Role = iota
	RoleApplicant
	RoleReviewer
	RoleSeniorReviewer
	RoleAdmin
)

var roleNames = [...]string{
	RoleVisitor:        "visitor",
	RoleApplicant:      "applicant",
	RoleReviewer:       "reviewer",
	RoleSeniorReviewer: "senior_reviewer",
	RoleAdmin:          "admin",
}

func (r Role) String() string {
	if r < RoleVisitor || r > RoleAdmin {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// AtLeast reports whether r is as privileged as min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return RoleVisitor, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) MarshalText() ([]byte, error) {
	if r < RoleVisitor || r > RoleAdmin {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// MinMotivationLength is the minimum number of characters in a reviewer
// application.
const MinMotivationLength = 50

// Application is a request by a visitor to become a reviewer.
type Application struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	Motivation string            `json:"motivation"`
	Status     ApplicationStatus `json:"status"`
	DecidedBy  *int64            `json:"decided_by,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type Store interface {
	CreateApplication(ctx context.Context, app *Application) error
	LockApplication(ctx context.Context, id int64) (*Application, error)
	HasPendingApplication(ctx context.Context, userID int64) (bool, error)
	SetApplicationStatus(ctx context.Context, id int64, status ApplicationStatus, decidedBy int64) error
	ListApplications(ctx context.Context, status ApplicationStatus) ([]Application, error)
}
