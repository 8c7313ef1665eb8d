// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Task represents a single to-do item as persisted.
type Task struct {
	// ID is an opaque identifier assigned at creation. Records written by
	// older tools may have none until their next save.
	ID string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty" validate:"omitempty,uuid4"`
	// Description may be blank in files written by older tools; only Add
	// and Edit enforce ValidateDescription.
	Description string `json:"description" yaml:"description" toml:"description"`
	Completed   bool   `json:"completed" yaml:"completed" toml:"completed"`
}

// Entry pairs a task with its 1-based display index.
type Entry struct {
	Index int
	Task  Task
}

// Entries numbers tasks in collection order, starting at 1.
func Entries(tasks []Task) []Entry {
	result := make([]Entry, len(tasks))
	for i, t := range tasks {
		result[i] = Entry{Index: i + 1, Task: t}
	}
	return result
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// notblank ships with validator but is not registered by default
		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	})
	return validate
}

// Validate checks a task record against its struct tags.
func (t Task) Validate() error {
	err := validatorInstance().Struct(t)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", strings.ToLower(e.Field()), e.Tag()))
	}
	return fmt.Errorf("invalid task: %s", strings.Join(msgs, "; "))
}

// ValidateDescription reports ErrInvalidInput for empty or whitespace-only text.
func ValidateDescription(description string) error {
	if err := validatorInstance().Var(description, "notblank"); err != nil {
		return ErrInvalidInput
	}
	return nil
}
