package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg is sent when the data file is written by any process.
type fileChangedMsg struct {
	Path string
}

// watcher reports changes to a single file. It watches the parent
// directory because the store replaces the file with a rename.
type watcher struct {
	w    *fsnotify.Watcher
	path string
}

func newWatcher(path string) (*watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &watcher{w: w, path: path}, nil
}

// watchCmd blocks until the next change to the file.
// Issue it again after every fileChangedMsg.
func (w *watcher) watchCmd() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
					continue
				}
				return fileChangedMsg{Path: event.Name}

			case _, ok := <-w.w.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func (w *watcher) Close() error {
	return w.w.Close()
}
