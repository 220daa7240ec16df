package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "STORAGE_ERROR: failed to insert log",
		New(ErrCodeStorage, "failed to insert log").Error())
	assert.Equal(t, "STORAGE_ERROR: failed to insert log (disk full)",
		New(ErrCodeStorage, "failed to insert log", "disk full").Error())
}

func TestHasCode(t *testing.T) {
	err := New(ErrCodeSnapshot, "bad snapshot")
	assert.True(t, HasCode(err, ErrCodeSnapshot))
	assert.False(t, HasCode(err, ErrCodeStorage))
	assert.False(t, HasCode(nil, ErrCodeStorage))
	assert.False(t, HasCode(errors.New("plain"), ErrCodeStorage))
}

func TestHasCodeWrapped(t *testing.T) {
	err := fmt.Errorf("refresh: %w", New(ErrCodeConfig, "failed to parse config"))
	assert.True(t, HasCode(err, ErrCodeConfig))
}
