package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleDigest(t *testing.T) {
	a := SampleDigest([]float64{10, 12, 9})
	assert.Len(t, a.String(), 64)
	assert.Equal(t, a, SampleDigest([]float64{10, 12, 9}))
	assert.NotEqual(t, a, SampleDigest([]float64{12, 10, 9}), "order is part of the sample")
	assert.NotEqual(t, a, SampleDigest([]float64{10, 12, 9.000000001}))
	assert.Equal(t, a.String()[:12], a.Short())
}

func TestNewHash(t *testing.T) {
	// sha256 of the empty input
	assert.Equal(t, Hash("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"), NewHash(nil))
	assert.Equal(t, NewHash(nil), SampleDigest(nil))
	assert.True(t, Hash("").IsEmpty())
	assert.Equal(t, "abc", Hash("abc").Short())
}
