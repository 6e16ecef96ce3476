package athlete

import (
	"fmt"
	"strings"
	"time"
)

// Role is the athlete's permission classification.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCaptain Role = "captain"
	RoleAthlete Role = "athlete"
)

// Division is one of the fixed competition categories.
type Division string

const (
	DivisionOpenMale      Division = "open (m)"
	DivisionOpenFemale    Division = "open (f)"
	DivisionScaledMale    Division = "scaled (m)"
	DivisionScaledFemale  Division = "scaled (f)"
	DivisionMastersMale   Division = "masters (55+ m)"
	DivisionMastersFemale Division = "masters (55+ f)"
)

var AllDivisions = map[Division]struct{}{
	DivisionOpenMale:      {},
	DivisionOpenFemale:    {},
	DivisionScaledMale:    {},
	DivisionScaledFemale:  {},
	DivisionMastersMale:   {},
	DivisionMastersFemale: {},
}

var AllRoles = map[Role]struct{}{
	RoleAdmin:   {},
	RoleCaptain: {},
	RoleAthlete: {},
}

// Athlete is a competitor profile. UserID is empty for pre-seeded athletes
// that nobody has claimed yet.
type Athlete struct {
	ID         string
	UserID     string
	Name       string
	Email      string
	CrossfitID string
	Division   *Division
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a Athlete) IsUnassigned() bool {
	return strings.TrimSpace(a.UserID) == ""
}

func (a Athlete) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAssignWeekly reports whether the athlete may grant weekly points to teammates.
func (a Athlete) CanAssignWeekly() bool {
	return a.Role == RoleCaptain || a.Role == RoleAdmin
}

// Profile holds the owner-editable attributes.
type Profile struct {
	Name       string
	Email      string
	CrossfitID string
	Division   *Division
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("athlete name is required")
	}
	if p.Division != nil {
		if _, ok := AllDivisions[*p.Division]; !ok {
			return fmt.Errorf("unknown division %q", *p.Division)
		}
	}

	return nil
}

func ParseRole(v string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(v)))
	if _, ok := AllRoles[role]; !ok {
		return "", fmt.Errorf("unknown athlete role %q", v)
	}
	return role, nil
}

func ParseDivision(v string) (*Division, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil, nil
	}
	division := Division(strings.ToLower(trimmed))
	if _, ok := AllDivisions[division]; !ok {
		return nil, fmt.Errorf("unknown division %q", v)
	}
	return &division, nil
}

// Identity is the authenticated caller resolved to an athlete profile.
type Identity struct {
	UserID  string
	Athlete Athlete
}

func (i Identity) AthleteID() string {
	return i.Athlete.ID
}

func (i Identity) Role() Role {
	return i.Athlete.Role
}
