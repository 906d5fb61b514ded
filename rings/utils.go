// Package rings provides the integer-sequence helpers used by canonicalisation:
// reversal, lexicographic comparison, signatures and Booth's minimal rotation.
package rings

import (
	"strconv"
	"strings"
)

// reverse returns a new slice containing the elements of s in reverse order.
// Time Complexity: O(n).
func reverse(s []int) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = s[len(s)-1-i]
	}

	return out
}

// compare lexicographically compares a and b; a proper prefix sorts first.
// Returns -1, 0 or +1.
func compare(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}

	return 0
}

// joinSig concatenates the elements of c with commas, producing a signature.
func joinSig(c []int) string {
	var b strings.Builder
	for i, v := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}

// minimalRotation implements Booth's algorithm to find the lexicographically
// minimal rotation of s in O(n) time, returning a fresh slice of length len(s).
//  1. Duplicate the sequence to length 2n.
//  2. Maintain failure links f initialised to -1.
//  3. Track the candidate start k while scanning j = 1..2n-1.
//  4. Extract the rotation starting at k.
func minimalRotation(s []int) []int {
	n := len(s)
	doubled := make([]int, 0, 2*n)
	doubled = append(append(doubled, s...), s...)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] { // i == -1 here
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}

	res := make([]int, n)
	copy(res, doubled[k:k+n])

	return res
}

// canonical returns the smaller of the minimal rotations of cycle and of its
// reversal, i.e. a representative invariant under rotation and reflection.
func canonical(cycle []int) Ring {
	rotF := minimalRotation(cycle)
	rotB := minimalRotation(reverse(cycle))
	if compare(rotB, rotF) < 0 {
		return rotB
	}

	return rotF
}
