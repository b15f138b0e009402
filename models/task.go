package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TaskStatus represents the board column a task occupies.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
	StatusCancel     TaskStatus = "cancel"
)

// AllStatuses lists the five board columns in display order.
var AllStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusDone, StatusCancel}

// IsValid reports whether s is one of the five board columns.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone, StatusCancel:
		return true
	}
	return false
}

// Title returns the human-readable column name.
func (s TaskStatus) Title() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	case StatusCancel:
		return "Cancel"
	}
	return string(s)
}

// Task represents a unit of work on the board.
//
// StartedAt is stamped the first time the task enters in-progress and
// never overwritten. CompletedAt is present exactly while the task sits
// in the done column; moving it anywhere else clears the value.
type Task struct {
	ID          string     `json:"id" yaml:"id" validate:"required,uuid4"`
	Title       string     `json:"title" yaml:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status      TaskStatus `json:"status" yaml:"status" validate:"required,oneof=todo in-progress review done cancel"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt" validate:"required"`
	StartedAt   *time.Time `json:"startedAt,omitempty" yaml:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags,omitempty"` // reserved for future filtering
}

// TaskTemplate is a saved (title, description) pair used to pre-fill new
// tasks. Tasks created from a template keep no link back to it.
type TaskTemplate struct {
	ID          string `json:"id" yaml:"id" validate:"required,uuid4"`
	Title       string `json:"title" yaml:"title" validate:"required,min=1,max=255"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("field '%s' failed rule '%s'", e.StructNamespace(), e.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return nil
}

// NewTask builds a fresh task in the To Do column with a generated ID.
// Title trimming and blank checks belong to the caller.
func NewTask(title, description string) Task {
	return Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewTaskTemplate builds a template with a generated ID.
func NewTaskTemplate(title, description string) TaskTemplate {
	return TaskTemplate{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
	}
}
