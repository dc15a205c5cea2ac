package domain

import "time"

// TaskDescriptionMaxLength is the longest description a task may carry.
const TaskDescriptionMaxLength = 255

// Task is a unit of work created by an authenticated user. CreatedBy
// records the creating user's ID for attribution; display information is
// resolved on demand through the user info lookup.
type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	CreatedDate time.Time  `json:"created_date"`
	CreatedBy   UserID     `json:"created_by"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks the task's own invariants.
func (t *Task) Validate() error {
	if len(t.Description) > TaskDescriptionMaxLength {
		return ErrDescriptionTooLong
	}
	return nil
}
