package kernel_test

import (
	"testing"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestParseUUID(t *testing.T) {
	const valid = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("accepts canonical and alternative forms", func(t *testing.T) {
		for _, in := range []string{
			valid,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.ParseUUID("orderId", in)

			require.NoError(t, err, in)
			assert.Equal(t, valid, id.String())
		}
	})

	t.Run("malformed input names the field", func(t *testing.T) {
		for _, in := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", "zzze8400-e29b-41d4-a716-446655440000"} {
			_, err := kernel.ParseUUID("orderId", in)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
			assert.Equal(t, "orderId", errs.ParamName(err))
		}
	})

	t.Run("nil uuid is treated as missing", func(t *testing.T) {
		_, err := kernel.ParseUUID("ownerId", "00000000-0000-0000-0000-000000000000")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, "ownerId", errs.ParamName(err))
	})
}

func TestFromUUID(t *testing.T) {
	raw := uuid.New()

	id := kernel.FromUUID(raw)

	assert.Equal(t, raw, id.Value())
	assert.Equal(t, raw.String(), id.String())
	assert.True(t, kernel.FromUUID(raw).IsEqual(id))
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.True(t, zero.IsZero())
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, kernel.FromUUID(uuid.Nil).Validate())
	assert.NoError(t, kernel.NewUUID().Validate())
}

func TestUUID_ValueIsACopy(t *testing.T) {
	original := kernel.NewUUID()
	before := original.String()

	raw := original.Value()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, before, original.String())
}
