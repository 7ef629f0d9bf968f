package graphics_test

import (
	"errors"
	"testing"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glviewport/internal/graphics"
	"glviewport/internal/graphics/gputest"
)

func TestCheckErrorDrainsAllFlags(t *testing.T) {
	gpu := gputest.New()
	require.NoError(t, graphics.CheckError(gpu, "idle"))

	gpu.PendingErrors = []uint32{gl.INVALID_ENUM, gl.INVALID_OPERATION}
	err := graphics.CheckError(gpu, "buffer upload")
	require.Error(t, err)

	var glErr *graphics.GLError
	require.True(t, errors.As(err, &glErr))
	assert.Equal(t, "buffer upload", glErr.Phase)
	assert.Len(t, glErr.Codes, 2)
	assert.Contains(t, err.Error(), "GL_INVALID_ENUM")
	assert.Contains(t, err.Error(), "GL_INVALID_OPERATION")

	assert.NoError(t, graphics.CheckError(gpu, "after drain"))
}

func TestErrorNameUnknown(t *testing.T) {
	assert.Equal(t, "0x1234", graphics.ErrorName(0x1234))
}

func TestQueryContextInfo(t *testing.T) {
	info := graphics.QueryContextInfo(gputest.New())
	assert.Equal(t, "3.2.0 gputest", info.Version)
	assert.Equal(t, "1.50 gputest", info.GLSLVersion)
}
