package models

import "time"

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "inprogress"
	StatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the accepted status values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task belongs to exactly one project and one owner. Deleting the project
// deletes its tasks. AssignedTo is a non-owning reference used for display
// and filtering only.
type Task struct {
	ID           uint     `gorm:"primaryKey"`
	ProjectID    uint     `gorm:"index;not null"`
	Project      *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Title        string   `gorm:"size:100;not null"`
	Description  string
	Status       TaskStatus `gorm:"size:20;default:todo"`
	OwnerID      uint       `gorm:"index;not null"`
	Owner        *User      `gorm:"foreignKey:OwnerID"`
	AssignedToID *uint      `gorm:"index"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID"`
	DueDate      *time.Time
	Completed    bool `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskResponse is the wire shape of a task. The project is referenced by ID
// while owner and assignee are embedded, matching the rest of the API.
type TaskResponse struct {
	ID          uint          `json:"id"`
	Project     uint          `json:"project"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      TaskStatus    `json:"status"`
	Owner       *UserResponse `json:"owner"`
	AssignedTo  *UserResponse `json:"assigned_to"`
	DueDate     *string       `json:"due_date"`
	Completed   bool          `json:"completed"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func NewTaskResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Project:     t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Owner != nil {
		owner := NewUserResponse(*t.Owner)
		resp.Owner = &owner
	}
	if t.AssignedTo != nil {
		assignee := NewUserResponse(*t.AssignedTo)
		resp.AssignedTo = &assignee
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}

func NewTaskResponseList(tasks []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}
