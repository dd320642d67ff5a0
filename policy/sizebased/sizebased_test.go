package sizebased_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvcraft/unicache/policy"
	"github.com/kvcraft/unicache/policy/sizebased"
)

func TestSelectLargestFirst(t *testing.T) {
	cands := []policy.Candidate[string]{
		{Key: "medium", Size: 512, Seq: 1},
		{Key: "huge", Size: 4096, Seq: 2},
		{Key: "tiny", Size: 16, Seq: 3},
	}

	p := sizebased.New[string]()
	require.Equal(t, "size_based", p.Name())
	assert.Equal(t, []string{"huge"}, p.Select(cands, 1))
	assert.Equal(t, []string{"huge", "medium"}, p.Select(cands, 2))
}

func TestSelectTieBreaksByInsertion(t *testing.T) {
	cands := []policy.Candidate[string]{
		{Key: "later", Size: 100, Seq: 8},
		{Key: "earlier", Size: 100, Seq: 2},
	}
	assert.Equal(t, []string{"earlier"}, sizebased.New[string]().Select(cands, 1))
}

func TestSelectClampsToAvailable(t *testing.T) {
	cands := []policy.Candidate[string]{{Key: "a", Size: 1, Seq: 1}}
	assert.Equal(t, []string{"a"}, sizebased.New[string]().Select(cands, 3))
	assert.Empty(t, sizebased.New[string]().Select(nil, 1))
}
