package lcg_test

import (
	"math/rand"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seededrand/lcg"
)

func TestKnownSequences(t *testing.T) {
	tests := []struct {
		seed   int64
		ints   []int32
		int10  []int32
		int16  []int32
		longs  []int64
		double float64
		float  float32
		bools  []bool
		bytes  []byte
	}{
		{
			seed:   0,
			ints:   []int32{-1155484576, -723955400, 1033096058},
			int10:  []int32{0, 8, 9, 7, 5, 3, 1, 1, 9, 4},
			int16:  []int32{11, 13, 3, 9, 10},
			longs:  []int64{-4962768465676381896, 4437113781045784766},
			double: 0.730967787376657,
			float:  0.7309677600860596,
			bools:  []bool{true, true, false, true, true, false, true, false},
			bytes:  []byte{96, 180, 32, 187, 56, 81},
		},
		{
			seed:   42,
			ints:   []int32{-1170105035, 234785527, -1360544799},
			int10:  []int32{0, 3, 8, 4, 0, 5, 5, 8, 9, 3},
			int16:  []int32{11, 0, 10, 0, 4},
			longs:  []int64{-5025562857975149833, -5843495416241995736},
			double: 0.7275636800328681,
			float:  0.7275636792182922,
			bools:  []bool{true, false, true, false, false, true, false, true},
			bytes:  []byte{53, 157, 65, 186, 247, 138},
		},
		{
			seed:   -1,
			ints:   []int32{1155099827, 1887904451, 52699159},
			int10:  []int32{3, 5, 9, 9, 4, 8, 7, 8, 5, 1},
			int16:  []int32{4, 7, 0, 8, 10},
			longs:  []int64{4961115982468162243, 226341162490527646},
			double: 0.26894263088050496,
			float:  0.26894259452819824,
			bools:  []bool{false, false, false, true, true, true, false, false},
			bytes:  []byte{179, 108, 217, 68, 195, 34},
		},
		{
			seed:   8409238,
			ints:   []int32{774027795, 1327900682, 24659985},
			int10:  []int32{7, 1, 2, 8, 3, 9, 3, 9, 6, 4},
			int16:  []int32{2, 4, 0, 1, 15},
			longs:  []int64{3324424067047893002, 105913829586481416},
			double: 0.18021738989913416,
			float:  0.18021738529205322,
			bools:  []bool{false, false, false, false, true, false, true, true},
			bytes:  []byte{19, 186, 34, 46, 10, 40},
		},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatInt(tt.seed, 10), func(t *testing.T) {
			s := lcg.New(tt.seed)
			for _, want := range tt.ints {
				assert.Equal(t, want, s.Int32())
			}

			s.SetSeed(tt.seed)
			for _, want := range tt.int10 {
				got, err := s.Int32N(10)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			s.SetSeed(tt.seed)
			for _, want := range tt.int16 {
				got, err := s.Int32N(16)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			s.SetSeed(tt.seed)
			for _, want := range tt.longs {
				assert.Equal(t, want, s.Int64())
			}

			s.SetSeed(tt.seed)
			assert.Equal(t, tt.double, s.Float64())

			s.SetSeed(tt.seed)
			assert.Equal(t, tt.float, s.Float32())

			s.SetSeed(tt.seed)
			for _, want := range tt.bools {
				assert.Equal(t, want, s.Bool())
			}

			s.SetSeed(tt.seed)
			buf := make([]byte, 6)
			s.Bytes(buf)
			assert.Equal(t, tt.bytes, buf)
		})
	}
}

func TestNormFloat64KnownValues(t *testing.T) {
	s := lcg.New(42)
	assert.InDelta(t, 1.1419053154730547, s.NormFloat64(), 1e-12)
	assert.InDelta(t, 0.919407948982788, s.NormFloat64(), 1e-12)
	assert.InDelta(t, -0.9498666368908959, s.NormFloat64(), 1e-12)

	s.SetSeed(0)
	assert.InDelta(t, 0.8025330637390305, s.NormFloat64(), 1e-12)
	assert.InDelta(t, -0.9015460884175122, s.NormFloat64(), 1e-12)
}

func TestReseedDiscardsCachedGaussian(t *testing.T) {
	s := lcg.New(42)
	first := s.NormFloat64()

	// The cached second value must not leak past the reseed.
	s.SetSeed(42)
	assert.Equal(t, first, s.NormFloat64())
}

func TestSameSeedSameSequence(t *testing.T) {
	a := lcg.New(8409238)
	b := lcg.New(8409238)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Int32(), b.Int32(), "call %d", i)
	}
}

func TestSameSeedMixedOperations(t *testing.T) {
	a := lcg.New(-77)
	b := lcg.New(-77)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Int64(), b.Int64())
		assert.Equal(t, a.Bool(), b.Bool())
		assert.Equal(t, a.Float32(), b.Float32())
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.NormFloat64(), b.NormFloat64())

		x, err := a.Int32N(int32(i + 1))
		require.NoError(t, err)
		y, err := b.Int32N(int32(i + 1))
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
	assert.Equal(t, a.State(), b.State())
}

func TestDifferentSeedsDiffer(t *testing.T) {
	seeds := []int64{0, 1, 42, -1, 8409238, 1 << 40}
	seen := make(map[int64]int64)
	for _, seed := range seeds {
		first := lcg.New(seed).Int64()
		prev, dup := seen[first]
		assert.False(t, dup, "seeds %d and %d share a first value", prev, seed)
		seen[first] = seed
	}
}

func TestReseedRealigns(t *testing.T) {
	a := lcg.New(1)
	b := lcg.New(2)
	require.NotEqual(t, a.Int64(), b.Int64())

	a.SetSeed(99)
	b.Seed(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Int32(), b.Int32())
	}
}

func TestInt32NRange(t *testing.T) {
	bounds := []int32{1, 2, 3, 10, 16, 100, 1000, 1 << 30, 1<<31 - 1}
	for _, bound := range bounds {
		s := lcg.New(int64(bound))
		distinct := make(map[int32]bool)
		for i := 0; i < 200; i++ {
			v, err := s.Int32N(bound)
			require.NoError(t, err)
			require.GreaterOrEqual(t, v, int32(0))
			require.Less(t, v, bound)
			distinct[v] = true
		}
		if bound > 1 {
			assert.Greater(t, len(distinct), 1, "bound %d", bound)
		}
	}
}

func TestInt32NSeedZero(t *testing.T) {
	s := lcg.New(0)
	for i := 0; i < 100; i++ {
		v, err := s.Int32N(10)
		require.NoError(t, err)
		assert.True(t, v >= 0 && v < 10)
	}
}

func TestInt32NRejectsNonPositiveBound(t *testing.T) {
	s := lcg.New(7)
	before := s.State()

	for _, bound := range []int32{0, -1, -1 << 31} {
		_, err := s.Int32N(bound)
		require.ErrorIs(t, err, lcg.ErrIllegalArgument)
	}
	assert.Equal(t, before, s.State())
}

func TestFloatRanges(t *testing.T) {
	s := lcg.New(123)
	doubles := make(map[float64]bool)
	floats := make(map[float32]bool)

	for i := 0; i < 200; i++ {
		d := s.Float64()
		require.True(t, d >= 0 && d < 1, "double %v", d)
		doubles[d] = true

		f := s.Float32()
		require.True(t, f >= 0 && f < 1, "float %v", f)
		floats[f] = true
	}
	assert.Greater(t, len(doubles), 1)
	assert.Greater(t, len(floats), 1)
}

func TestBytesTruncatesLastGroup(t *testing.T) {
	for n := 0; n <= 9; n++ {
		full := make([]byte, 12)
		lcg.New(5).Bytes(full)

		buf := make([]byte, n)
		lcg.New(5).Bytes(buf)
		assert.Equal(t, full[:n], buf, "length %d", n)
	}

	// A 5-byte fill consumes two draws, so the streams stay in step.
	a, b := lcg.New(5), lcg.New(5)
	a.Bytes(make([]byte, 5))
	b.Int32()
	b.Int32()
	assert.Equal(t, a.State(), b.State())
}

func TestNextPanicsOutsideRange(t *testing.T) {
	s := lcg.New(1)
	assert.Panics(t, func() { s.Next(0) })
	assert.Panics(t, func() { s.Next(33) })
	assert.NotPanics(t, func() { s.Next(1) })
	assert.NotPanics(t, func() { s.Next(32) })
}

func TestBacksMathRand(t *testing.T) {
	r := rand.New(lcg.New(42))
	v := r.Int63()
	assert.GreaterOrEqual(t, v, int64(0))

	s := lcg.New(42)
	assert.Equal(t, uint64(s.Int64()), lcg.New(42).Uint64())
	first := int64(-5025562857975149833)
	assert.Equal(t, int64(uint64(first)>>1), lcg.New(42).Int63())
}

func TestReadFillsBuffer(t *testing.T) {
	buf := make([]byte, 7)
	n, err := lcg.New(42).Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	want := make([]byte, 7)
	lcg.New(42).Bytes(want)
	assert.Equal(t, want, buf)
}

func TestConcurrentCallsConsumeWholeSteps(t *testing.T) {
	const workers, calls = 8, 500

	shared := lcg.New(2024)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				shared.Int64()
			}
		}()
	}
	wg.Wait()

	serial := lcg.New(2024)
	for i := 0; i < workers*calls; i++ {
		serial.Int64()
	}
	assert.Equal(t, serial.State(), shared.State())
}
