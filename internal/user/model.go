package user

// PointsPerLevel is how many points a user needs to climb one level.
const PointsPerLevel = 10

// User is a participant's point account, keyed by identity.
// Level is never stored; it is derived from Points on every read.
type User struct {
	Username string
	Points   int
}

// Level returns the user's current level.
func (u User) Level() int {
	return ComputeLevel(u.Points)
}

// Standing is one leaderboard row.
type Standing struct {
	Username string
	Points   int
	Level    int
}

// ComputeLevel derives a level from a point total: floor(points/10)+1.
func ComputeLevel(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}
