package filemeta

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, mapServiceError(nil))
	})

	t.Run("validation error survives transport", func(t *testing.T) {
		remote := errors.New("service error: " + (&ValidationError{Field: FieldMimeType, Rule: RuleAllowedPrefix}).Error())

		var verr *ValidationError
		require.ErrorAs(t, mapServiceError(remote), &verr)
		assert.Equal(t, FieldMimeType, verr.Field)
		assert.Equal(t, RuleAllowedPrefix, verr.Rule)
	})

	t.Run("duplicate link survives transport", func(t *testing.T) {
		remote := fmt.Errorf("service error: %s", fmt.Errorf("%w: %q", ErrDuplicateLink, "L1").Error())
		assert.ErrorIs(t, mapServiceError(remote), ErrDuplicateLink)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		remote := errors.New("persistence failure during insert: disk I/O error")
		assert.Equal(t, remote, mapServiceError(remote))
	})
}

func TestNewFileMetaAdapter_NilContainer(t *testing.T) {
	assert.Panics(t, func() {
		NewFileMetaAdapter(nil)
	})
}
