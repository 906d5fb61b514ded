package rings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMinimalRotation covers Booth's algorithm on typical and periodic inputs.
func TestMinimalRotation(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4}, minimalRotation([]int{3, 4, 1, 2}))
	assert.Equal(t, []int{0, 5, 0, 7}, minimalRotation([]int{0, 7, 0, 5}))
	assert.Equal(t, []int{2, 2, 2}, minimalRotation([]int{2, 2, 2}))
	assert.Equal(t, []int{1}, minimalRotation([]int{1}))
}

// TestCanonical checks rotation and reflection invariance.
func TestCanonical(t *testing.T) {
	want := Ring{0, 1, 2, 3, 4}
	assert.Equal(t, want, canonical([]int{2, 3, 4, 0, 1}))
	assert.Equal(t, want, canonical([]int{4, 3, 2, 1, 0}))
	assert.Equal(t, want, canonical([]int{0, 4, 3, 2, 1}))
}

// TestCompare anchors prefix ordering.
func TestCompare(t *testing.T) {
	assert.Equal(t, -1, compare([]int{1, 2}, []int{1, 2, 0}))
	assert.Equal(t, 1, compare([]int{2}, []int{1, 9}))
	assert.Equal(t, 0, compare([]int{4, 5}, []int{4, 5}))
	assert.Equal(t, "3,1,2", joinSig([]int{3, 1, 2}))
}
