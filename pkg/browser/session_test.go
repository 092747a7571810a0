package browser

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGotoOptions(t *testing.T) {
	opts := gotoOptions()

	// the enum constants are already pointers; the option must carry the
	// constant itself, not an address of it
	require.NotNil(t, opts.WaitUntil)
	assert.Equal(t, playwright.WaitUntilStateDomcontentloaded, opts.WaitUntil)
	require.NotNil(t, opts.Timeout)
	assert.Equal(t, DefaultNavigationTimeout, *opts.Timeout)
}

func TestReloadOptions(t *testing.T) {
	opts := reloadOptions()

	require.NotNil(t, opts.WaitUntil)
	assert.Equal(t, playwright.WaitUntilStateDomcontentloaded, opts.WaitUntil)
	require.NotNil(t, opts.Timeout)
	assert.Equal(t, DefaultNavigationTimeout, *opts.Timeout)
}
