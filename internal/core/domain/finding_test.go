package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestComputeFingerprint_Deterministic tests fingerprint stability
func TestComputeFingerprint_Deterministic(t *testing.T) {
	a := ComputeFingerprint("button-name", "#submit", "<button></button>")
	b := ComputeFingerprint("button-name", "#submit", "<button></button>")

	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

// TestComputeFingerprint_DistinguishesInputs tests that each component matters
func TestComputeFingerprint_DistinguishesInputs(t *testing.T) {
	base := ComputeFingerprint("button-name", "#submit", "<button></button>")

	assert.NotEqual(t, base, ComputeFingerprint("image-alt", "#submit", "<button></button>"))
	assert.NotEqual(t, base, ComputeFingerprint("button-name", "#cancel", "<button></button>"))
	assert.NotEqual(t, base, ComputeFingerprint("button-name", "#submit", "<button>x</button>"))
}

// TestComputeFingerprint_NoConcatenationCollision tests field separation
func TestComputeFingerprint_NoConcatenationCollision(t *testing.T) {
	// "ab"+"c" must not collide with "a"+"bc".
	assert.NotEqual(t,
		ComputeFingerprint("ab", "c", ""),
		ComputeFingerprint("a", "bc", ""))
}

// TestImpact_Weight tests impact score weights
func TestImpact_Weight(t *testing.T) {
	assert.Equal(t, 1, ImpactMinor.Weight())
	assert.Equal(t, 2, ImpactModerate.Weight())
	assert.Equal(t, 4, ImpactSerious.Weight())
	assert.Equal(t, 8, ImpactCritical.Weight())
	assert.Equal(t, 1, Impact("bogus").Weight())
}

// TestImpact_IsValid tests impact validation
func TestImpact_IsValid(t *testing.T) {
	assert.True(t, ImpactMinor.IsValid())
	assert.True(t, ImpactCritical.IsValid())
	assert.False(t, Impact("").IsValid())
	assert.False(t, Impact("severe").IsValid())
}
