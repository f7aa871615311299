package accesscontrol

type Action string

const (
	ActionCreateReview      Action = "review:create"
	ActionEditReview        Action = "review:edit"
	ActionDeleteReview      Action = "review:delete"
	ActionVoteReview        Action = "review:vote"
	ActionSubmitApplication Action = "application:submit"
	ActionDecideApplication Action = "application:decide"
	ActionAssignRole        Action = "role:assign"
	ActionManageRaffle      Action = "raffle:manage"
	ActionImportVenue       Action = "venue:import"
)

// DeniedMessage is shown to users whose role does not permit an action.
const DeniedMessage = "אין לך הרשאה לבצע פעולה זו"

var everyone = []Role{RoleVisitor, RoleApplicant, RoleReviewer, RoleSeniorReviewer, RoleAdmin}

var permissions = map[Action][]Role{
	ActionCreateReview:      {RoleReviewer, RoleSeniorReviewer, RoleAdmin},
	ActionEditReview:        {RoleSeniorReviewer, RoleAdmin},
	ActionDeleteReview:      {RoleSeniorReviewer, RoleAdmin},
	ActionVoteReview:        everyone,
	ActionSubmitApplication: {RoleVisitor, RoleApplicant},
	ActionDecideApplication: {RoleAdmin},
	ActionAssignRole:        {RoleAdmin},
	ActionManageRaffle:      {RoleAdmin},
	ActionImportVenue:       {RoleAdmin},
}

// CanWrite reports whether role may perform action regardless of ownership.
func CanWrite(role Role, action Action) bool {
	for _, r := range permissions[action] {
		if r == role {
			return true
		}
	}
	return false
}

// CanModify extends CanWrite with ownership: the author of a review may
// always edit or delete it.
func CanModify(role Role, action Action, isOwner bool) bool {
	if isOwner && (action == ActionEditReview || action == ActionDeleteReview) {
		return true
	}
	return CanWrite(role, action)
}
