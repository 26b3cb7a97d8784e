//go:build dialog || windows

package picker

import (
	"errors"

	"github.com/sqweek/dialog"
)

type NativeDialog struct{}

func NewNativeDialog() *NativeDialog {
	return &NativeDialog{}
}

func (NativeDialog) PickFile(opts FileOptions) (string, error) {
	path, err := dialog.File().
		Title(opts.Title).
		Filter(opts.FilterName, opts.Extensions...).
		SetStartDir(opts.StartDir).
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrCancelled
	}
	return path, err
}

func (NativeDialog) PickFolder(opts FolderOptions) (string, error) {
	path, err := dialog.Directory().
		Title(opts.Title).
		SetStartDir(opts.StartDir).
		Browse()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrCancelled
	}
	return path, err
}
