package synctarget_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/filedriver/localdriver"
	"github.com/noteforge/joplin-sync-go/internal/synctarget"
)

func TestVerifyBootstrapsPristineRemote(t *testing.T) {
	ctx := context.Background()
	drv, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	info, err := synctarget.Verify(ctx, drv)
	require.NoError(t, err)
	assert.True(t, info.Supported())

	text, err := drv.GetText(ctx, "info.json")
	require.NoError(t, err)
	assert.Contains(t, text, `"version":3`)
}

func TestVerifyRejectsE2EE(t *testing.T) {
	ctx := context.Background()
	drv, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, drv.PutText(ctx, "info.json", `{"version":3,"e2ee":{"value":true,"updatedTime":0},"activeMasterKeyId":{"value":"","updatedTime":0},"masterKeys":[],"ppk":null}`))

	_, err = synctarget.Verify(ctx, drv)
	assert.ErrorIs(t, err, synctarget.ErrNotSupported)
}

func TestVerifyAcceptsAlreadySupportedRemote(t *testing.T) {
	ctx := context.Background()
	drv, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	info, err := synctarget.Verify(ctx, drv)
	require.NoError(t, err)

	info2, err := synctarget.Verify(ctx, drv)
	require.NoError(t, err)
	assert.Equal(t, info.Version, info2.Version)
}
