package models

// Role is the closed set of account types. Every Person carries exactly one,
// and a matching subtype row (managers/coaches/players) exists for it.
type Role string

const (
	RoleManager Role = "manager"
	RoleCoach   Role = "coach"
	RolePlayer  Role = "player"
)

func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleCoach, RolePlayer:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
