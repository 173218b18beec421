package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeStatusKindString(t *testing.T) {
	assert.Equal(t, "loading", MergeStatusLoading.String())
	assert.Equal(t, "clean", MergeStatusClean.String())
	assert.Equal(t, "conflicted", MergeStatusConflicted.String())
	assert.Equal(t, "invalid", MergeStatusInvalid.String())
	assert.Equal(t, "unknown", MergeStatusKind(42).String())
}
