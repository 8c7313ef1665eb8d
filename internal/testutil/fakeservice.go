// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"slices"
	"sync"

	"jtask/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task

	// Error injection for testing
	AddErr      error
	ListErr     error
	EditErr     error
	RemoveErr   error
	CompleteErr error
	ReopenErr   error

	calls map[string]int
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{calls: make(map[string]int)}
}

// Seed appends tasks without counting as an Add call.
func (f *FakeService) Seed(tasks ...service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, tasks...)
}

// Tasks returns a copy of the current collection.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.tasks)
}

// CallCount returns how many times the named method was called.
func (f *FakeService) CallCount(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[method]
}

func (f *FakeService) record(method string) {
	f.calls[method]++
}

// Add implements service.Service.
func (f *FakeService) Add(ctx context.Context, description string) (service.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Add")
	if f.AddErr != nil {
		return service.Entry{}, f.AddErr
	}
	if err := service.ValidateDescription(description); err != nil {
		return service.Entry{}, err
	}
	f.tasks = append(f.tasks, service.Task{Description: description})
	return service.Entry{Index: len(f.tasks), Task: f.tasks[len(f.tasks)-1]}, nil
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context) ([]service.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("List")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return service.Entries(f.tasks), nil
}

// Edit implements service.Service.
func (f *FakeService) Edit(ctx context.Context, index int, description string) (service.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Edit")
	if f.EditErr != nil {
		return service.Entry{}, f.EditErr
	}
	if err := service.ValidateDescription(description); err != nil {
		return service.Entry{}, err
	}
	if err := service.CheckIndex(index, len(f.tasks)); err != nil {
		return service.Entry{}, err
	}
	f.tasks[index-1].Description = description
	return service.Entry{Index: index, Task: f.tasks[index-1]}, nil
}

// Remove implements service.Service.
func (f *FakeService) Remove(ctx context.Context, index int) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Remove")
	if f.RemoveErr != nil {
		return service.Task{}, f.RemoveErr
	}
	if err := service.CheckIndex(index, len(f.tasks)); err != nil {
		return service.Task{}, err
	}
	removed := f.tasks[index-1]
	f.tasks = slices.Delete(f.tasks, index-1, index)
	return removed, nil
}

// Complete implements service.Service.
func (f *FakeService) Complete(ctx context.Context, index int) (service.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Complete")
	if f.CompleteErr != nil {
		return service.Entry{}, f.CompleteErr
	}
	return f.setCompleted(index, true)
}

// Reopen implements service.Service.
func (f *FakeService) Reopen(ctx context.Context, index int) (service.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Reopen")
	if f.ReopenErr != nil {
		return service.Entry{}, f.ReopenErr
	}
	return f.setCompleted(index, false)
}

func (f *FakeService) setCompleted(index int, completed bool) (service.Entry, error) {
	if err := service.CheckIndex(index, len(f.tasks)); err != nil {
		return service.Entry{}, err
	}
	f.tasks[index-1].Completed = completed
	return service.Entry{Index: index, Task: f.tasks[index-1]}, nil
}
