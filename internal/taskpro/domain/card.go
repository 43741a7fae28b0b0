package domain

import "time"

// Priority is the closed ordered priority enumeration for cards.
type Priority string

const (
	PriorityWithout Priority = "without"
	PriorityLow     Priority = "low"
	PriorityMedium  Priority = "medium"
	PriorityHigh    Priority = "high"
)

// priorityRank gives the ordering used by the deep-read priority filter.
var priorityRank = map[Priority]int{
	PriorityWithout: 0,
	PriorityLow:     1,
	PriorityMedium:  2,
	PriorityHigh:    3,
}

// priorityColors maps each priority to its display colour.
var priorityColors = map[Priority]string{
	PriorityWithout: "#a8a8a8",
	PriorityLow:     "#8fa1d0",
	PriorityMedium:  "#e09cb5",
	PriorityHigh:    "#bedbb0",
}

// ValidPriority reports whether p is one of the supported priorities.
func ValidPriority(p Priority) bool {
	_, ok := priorityRank[p]
	return ok
}

// AtLeast reports whether p ranks at or above min in the priority order.
func (p Priority) AtLeast(min Priority) bool {
	return priorityRank[p] >= priorityRank[min]
}

// Color returns the display colour associated with the priority.
func (p Priority) Color() string {
	return priorityColors[p]
}

// CardCollaborator is a denormalized snapshot of a user captured at
// assignment time. Renaming the user later does not update the snapshot.
type CardCollaborator struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Card is a task unit. BoardID and OwnerID are denormalized from the column
// hierarchy at write time; moveCard re-derives them from the destination
// column so they never go stale.
type Card struct {
	ID            string
	ColumnID      string
	BoardID       string
	OwnerID       string
	Title         string
	Description   string
	Priority      Priority
	Deadline      *time.Time
	Collaborators []CardCollaborator
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
