package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/store"
	"github.com/Astreocclu/pool-visualizer/pkg/tenants"
)

func newPoolSession(t *testing.T) *Session {
	t.Helper()
	registry := tenants.NewRegistry(logger.NewNop())
	st := store.New("pools", nil, logger.NewNop())
	return NewSession(registry, "pools", st, logger.NewNop())
}

func TestSessionStartsAtFirstStep(t *testing.T) {
	sess := newPoolSession(t)

	assert.Equal(t, 1, sess.Index())
	assert.Equal(t, tenants.StepPoolSizeShape, sess.Step().Kind)
	assert.Equal(t, 7, sess.StepCount())
}

func TestSessionNextValidatesAndAdvances(t *testing.T) {
	sess := newPoolSession(t)

	// Defaults already satisfy the size & shape step.
	require.NoError(t, sess.Next())
	assert.Equal(t, tenants.StepPoolFinish, sess.Step().Kind)
}

func TestSessionNextBlockedByMissingRequired(t *testing.T) {
	registry := tenants.NewRegistry(logger.NewNop())
	st := store.New("pools", nil, logger.NewNop())
	sess := NewSession(registry, "pools", st, logger.NewNop())

	// Clear a required selection behind the session's back.
	st.Set("size", models.String(""))

	err := sess.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size is required")
	assert.Equal(t, 1, sess.Index())
}

func TestSessionPrevClampsAtFirstStep(t *testing.T) {
	sess := newPoolSession(t)

	sess.Prev()
	assert.Equal(t, 1, sess.Index())

	require.NoError(t, sess.Next())
	sess.Prev()
	assert.Equal(t, 1, sess.Index())
}

func TestSessionNextClampsAtLastStep(t *testing.T) {
	sess := newPoolSession(t)
	require.NoError(t, sess.SetUpload(Upload{Filename: "yard.jpg", Data: []byte("jpeg")}))

	for i := 0; i < 20; i++ {
		require.NoError(t, sess.Next())
	}

	assert.Equal(t, sess.StepCount(), sess.Index())
	assert.True(t, sess.AtReview())
}

func TestSessionUploadGatesAdvance(t *testing.T) {
	sess := newPoolSession(t)

	// Walk to the upload step.
	for sess.Step().Kind != tenants.StepUpload {
		require.NoError(t, sess.Next())
	}

	err := sess.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please upload a photo")

	require.NoError(t, sess.SetUpload(Upload{Filename: "yard.jpg", Data: []byte("jpeg")}))
	require.NoError(t, sess.Next())
	assert.True(t, sess.AtReview())
}

func TestSessionSetRejectsUnknownOption(t *testing.T) {
	sess := newPoolSession(t)

	err := sess.Set("finish", models.String("lava"))
	require.Error(t, err)

	// The store keeps the previous value.
	value, ok := sess.Get("finish")
	require.True(t, ok)
	assert.Equal(t, "pebble_blue", value.Str)
}

func TestSessionSetUploadRejectsInvalid(t *testing.T) {
	sess := newPoolSession(t)

	err := sess.SetUpload(Upload{Filename: "quote.pdf", Data: []byte("%PDF")})
	require.Error(t, err)
	assert.Nil(t, sess.Upload())
}

func TestSessionReviewCoversDeclaredKeys(t *testing.T) {
	sess := newPoolSession(t)
	require.NoError(t, sess.Set("finish", models.String("glass_tile")))

	lines := sess.Review()
	require.Len(t, lines, len(sess.Descriptor().SelectionKeys))

	byKey := map[string]models.Value{}
	for _, line := range lines {
		byKey[line.Key] = line.Value
	}
	assert.Equal(t, "glass_tile", byKey["finish"].Str)
	assert.Equal(t, "classic", byKey["size"].Str)
}
