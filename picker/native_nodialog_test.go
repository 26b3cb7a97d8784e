//go:build !dialog && !windows

package picker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNativeDialog_Unavailable(t *testing.T) {
	p := NewPicker(NewNativeDialog(), "/")

	_, err := p.PickFolder(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	got, err := p.OpenImage(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, got.IsEmpty())
}
