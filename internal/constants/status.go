package constants

import "strconv"

type ActivityStatus uint

const (
	StatusCompleted ActivityStatus = 1
	StatusPending   ActivityStatus = 2
)

var statusNames = map[ActivityStatus]string{
	StatusCompleted: "completed",
	StatusPending:   "pending",
}

// BuiltinStatuses lists the statuses seeded into a fresh database.
func BuiltinStatuses() []ActivityStatus {
	return []ActivityStatus{StatusCompleted, StatusPending}
}

func (s ActivityStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "status-" + strconv.FormatUint(uint64(s), 10)
}
