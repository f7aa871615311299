package accesscontrol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCanWriteTable(t *testing.T) {
	cases := []struct {
		action  Action
		allowed []Role
	}{
		{ActionCreateReview, []Role{RoleReviewer, RoleSeniorReviewer, RoleAdmin}},
		{ActionEditReview, []Role{RoleSeniorReviewer, RoleAdmin}},
		{ActionDeleteReview, []Role{RoleSeniorReviewer, RoleAdmin}},
		{ActionAssignRole, []Role{RoleAdmin}},
		{ActionDecideApplication, []Role{RoleAdmin}},
		{ActionManageRaffle, []Role{RoleAdmin}},
		{ActionSubmitApplication, []Role{RoleVisitor, RoleApplicant}},
	}

	for _, tc := range cases {
		allowed := map[Role]bool{}
		for _, r := range tc.allowed {
			allowed[r] = true
		}
		for r := RoleVisitor; r <= RoleAdmin; r++ {
			if got := CanWrite(r, tc.action); got != allowed[r] {
				t.Fatalf("CanWrite(%s, %s) = %v, want %v", r, tc.action, got, allowed[r])
			}
		}
	}
}

func TestCanModifyOwnership(t *testing.T) {
	if !CanModify(RoleReviewer, ActionEditReview, true) {
		t.Fatalf("author should be able to edit")
	}
	if !CanModify(RoleVisitor, ActionDeleteReview, true) {
		t.Fatalf("author should be able to delete even after losing the reviewer role")
	}
	if CanModify(RoleReviewer, ActionDeleteReview, false) {
		t.Fatalf("a reviewer must not delete someone else's review")
	}
	if !CanModify(RoleSeniorReviewer, ActionDeleteReview, false) {
		t.Fatalf("a senior reviewer moderates any review")
	}
	if CanModify(RoleReviewer, ActionAssignRole, true) {
		t.Fatalf("ownership must not grant admin actions")
	}
}

func TestRoleOrderAndParsing(t *testing.T) {
	order := []string{"visitor", "applicant", "reviewer", "senior_reviewer", "admin"}
	for i, name := range order {
		r, err := ParseRole(name)
		if err != nil {
			t.Fatalf("ParseRole(%q) error = %v", name, err)
		}
		if int(r) != i {
			t.Fatalf("ParseRole(%q) = %d, want %d", name, r, i)
		}
		if r.String() != name {
			t.Fatalf("Role(%d).String() = %q, want %q", i, r.String(), name)
		}
	}
	if !RoleAdmin.AtLeast(RoleReviewer) || RoleApplicant.AtLeast(RoleReviewer) {
		t.Fatalf("AtLeast() does not follow the privilege order")
	}
	if _, err := ParseRole("moderator"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("ParseRole(moderator) error = %v, want ErrUnknownRole", err)
	}
}

func TestRoleJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleSeniorReviewer})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"role":"senior_reviewer"}` {
		t.Fatalf("Marshal() = %s", b)
	}

	var in struct {
		Role Role `json:"role"`
	}
	if err := json.Unmarshal([]byte(`{"role":"reviewer"}`), &in); err != nil || in.Role != RoleReviewer {
		t.Fatalf("Unmarshal() = %v, %v", in.Role, err)
	}
	if err := json.Unmarshal([]byte(`{"role":"owner"}`), &in); err == nil {
		t.Fatalf("Unmarshal(owner) expected error")
	}
}
