//go:build !dialog && !windows

package picker

// NativeDialog 非 Windows 且不带 dialog 构建标签时的占位实现（无 GTK/cgo 的环境）
type NativeDialog struct{}

func NewNativeDialog() *NativeDialog {
	return &NativeDialog{}
}

func (NativeDialog) PickFile(FileOptions) (string, error) {
	return "", ErrUnavailable
}

func (NativeDialog) PickFolder(FolderOptions) (string, error) {
	return "", ErrUnavailable
}
