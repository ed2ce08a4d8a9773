package guard_test

import (
	"errors"
	"testing"

	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard returns nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value guard returns the given error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("Lot must be created via NewLot")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero value guard falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("copies keep the constructed flag", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, copied.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInEntity(t *testing.T) {
	errLotNotConstructed := errors.New("Lot must be created via NewLot")

	type lot struct {
		id    string
		qty   int
		guard guard.ConstructorGuard
	}

	newLot := func(id string, qty int) (lot, error) {
		if id == "" {
			return lot{}, errors.New("lot id is required")
		}
		return lot{id: id, qty: qty, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("should validate a lot built by its constructor", func(t *testing.T) {
		l, err := newLot("LOT20250909001", 850)

		require.NoError(t, err)
		require.NoError(t, l.guard.Validate(errLotNotConstructed))
	})

	t.Run("should reject a zero value lot", func(t *testing.T) {
		var l lot

		assert.Equal(t, errLotNotConstructed, l.guard.Validate(errLotNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	for range b.N {
		_ = g.Validate(err)
	}
}
