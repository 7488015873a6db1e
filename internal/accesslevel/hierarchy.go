package accesslevel

// Level is the canonical access level enumeration. The numeric value is the
// rank: a lower rank means a higher privilege.
type Level int

const (
	Administrator Level = 1
	Manager       Level = 2
	CommonUser    Level = 3
	Viewer        Level = 4
)

// DefaultLevelID is the baseline level assigned when no explicit level is
// requested or the caller is not allowed to request one.
const DefaultLevelID = int64(Viewer)

var levelNames = map[Level]string{
	Administrator: "Administrator",
	Manager:       "Manager",
	CommonUser:    "CommonUser",
	Viewer:        "Viewer",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Unknown"
}

// Rank returns the position of the level in the hierarchy.
func (l Level) Rank() int {
	return int(l)
}

// Satisfies reports whether a user holding this level meets the required
// minimum. Administrator (rank 1) satisfies everything; Viewer (rank 4)
// satisfies only Viewer.
func (l Level) Satisfies(required Level) bool {
	return l.Rank() <= required.Rank()
}

// LevelFromName maps a stored or transmitted label to the canonical level.
// The label "User" is the name the access_levels table historically used for
// CommonUser, so both spellings resolve. An unrecognized label returns
// ok=false; callers treat that as non-satisfying, never as an error.
func LevelFromName(name string) (Level, bool) {
	switch name {
	case "Administrator":
		return Administrator, true
	case "Manager":
		return Manager, true
	case "CommonUser", "User":
		return CommonUser, true
	case "Viewer":
		return Viewer, true
	default:
		return 0, false
	}
}

// LevelFromID maps a level row id to the enum. Seeded ids match ranks.
func LevelFromID(id int64) (Level, bool) {
	if id >= int64(Administrator) && id <= int64(Viewer) {
		return Level(id), true
	}
	return 0, false
}
