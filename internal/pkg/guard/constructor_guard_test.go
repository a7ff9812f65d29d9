package guard_test

import (
	"errors"
	"testing"

	"cargo/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command must be created via its constructor")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type trackShipment struct {
		reference string
		guard     guard.ConstructorGuard
	}
	errShipmentNotConstructed := errors.New("trackShipment must be created via newTrackShipment")

	newTrackShipment := func(reference string) (trackShipment, error) {
		if reference == "" {
			return trackShipment{}, errors.New("reference is required")
		}
		return trackShipment{reference: reference, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_marks_value", func(t *testing.T) {
		cmd, err := newTrackShipment("CN-42")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errShipmentNotConstructed))
	})

	t.Run("copies_keep_the_mark", func(t *testing.T) {
		cmd, err := newTrackShipment("CN-43")
		require.NoError(t, err)

		copied := cmd

		require.NoError(t, copied.guard.Validate(errShipmentNotConstructed))
	})

	t.Run("literal_is_rejected", func(t *testing.T) {
		cmd := trackShipment{reference: "CN-44"}

		assert.Equal(t, errShipmentNotConstructed, cmd.guard.Validate(errShipmentNotConstructed))
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	errNotConstructed := errors.New("not constructed")

	done := make(chan struct{})
	for range 50 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 200 {
				assert.NoError(t, g.Validate(errNotConstructed))
			}
		}()
	}
	for range 50 {
		<-done
	}
}
