package settings_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i4.energy/across/smscmd/settings"
)

func TestScalar(t *testing.T) {
	s := settings.NewStore()
	s.DefineScalar("Min2", 5)

	v, err := s.Scalar("Min2")
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	require.NoError(t, s.SetScalar("Min2", 10.5))
	v, err = s.Scalar("Min2")
	require.NoError(t, err)
	assert.Equal(t, 10.5, v)

	assert.ErrorIs(t, s.SetScalar("Max2", 1), settings.ErrUnknownSetting)
	_, err = s.Scalar("Max2")
	assert.ErrorIs(t, err, settings.ErrUnknownSetting)
}

func TestArray(t *testing.T) {
	s := settings.NewStore()
	s.DefineArray("tmin", 4)

	require.NoError(t, s.SetElement("tmin", 1, 12.5))
	assert.ErrorIs(t, s.SetElement("tmin", 4, 1), settings.ErrIndex)
	assert.ErrorIs(t, s.SetElement("tmin", -1, 1), settings.ErrIndex)

	a, err := s.Array("tmin")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 12.5, 0, 0}, a)

	a[0] = 99
	b, err := s.Array("tmin")
	require.NoError(t, err)
	assert.Equal(t, 0.0, b[0], "Array must return a copy")

	n, err := s.Len("tmin")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestKindMismatch(t *testing.T) {
	s := settings.NewStore()
	s.DefineScalar("mode", 0)
	s.DefineArray("tmin", 2)

	assert.ErrorIs(t, s.SetElement("mode", 0, 1), settings.ErrKind)
	assert.ErrorIs(t, s.SetScalar("tmin", 1), settings.ErrKind)
}

func TestSnapshotAndNames(t *testing.T) {
	s := settings.NewStore()
	s.DefineScalar("mode", 2)
	s.DefineArray("tmin", 2)

	assert.Equal(t, map[string]any{
		"mode": 2.0,
		"tmin": []float64{0, 0},
	}, s.Snapshot())
	assert.Equal(t, []string{"mode", "tmin"}, s.Names())
}

func TestConcurrentWrites(t *testing.T) {
	s := settings.NewStore()
	s.DefineArray("zone", 8)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.SetElement("zone", i, float64(j))
				_ = s.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	a, err := s.Array("zone")
	require.NoError(t, err)
	for _, v := range a {
		assert.Equal(t, 99.0, v)
	}
}
