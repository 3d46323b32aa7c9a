package tailoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/types"
)

func block(id, content string) types.ResumeBlock {
	return types.ResumeBlock{ID: id, Type: types.BlockExperience, Content: content}
}

func ids(blocks []types.ResumeBlock) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.ID
	}
	return out
}

func TestTailor_RanksByOverlap(t *testing.T) {
	blocks := []types.ResumeBlock{
		block("a", "Led a team of five"),
		block("b", "Built React dashboards"),
		block("c", "Shipped React apps on AWS with Docker"),
	}

	got := Tailor("Main", blocks, "React, AWS and Docker experience")

	assert.Equal(t, "Main (Tailored)", got.Name)
	assert.Equal(t, []string{"c", "b", "a"}, ids(got.Blocks))
}

func TestTailor_StableTies(t *testing.T) {
	blocks := []types.ResumeBlock{
		block("first", "Python"),
		block("none1", "Gardening"),
		block("second", "python scripts"),
		block("none2", "Cooking"),
	}

	got := Tailor("CV", blocks, "Python role")

	assert.Equal(t, []string{"first", "second", "none1", "none2"}, ids(got.Blocks))
}

func TestTailor_CapsAtMaxBlocks(t *testing.T) {
	blocks := make([]types.ResumeBlock, 20)
	for i := range blocks {
		blocks[i] = block(fmt.Sprintf("b%02d", i), "plain text")
	}
	blocks[19].Content = "SQL"

	got := Tailor("Big", blocks, "SQL")

	require.Len(t, got.Blocks, MaxBlocks)
	assert.Equal(t, "b19", got.Blocks[0].ID)
	assert.Equal(t, "b00", got.Blocks[1].ID)
}

func TestTailor_FewerBlocksThanMax(t *testing.T) {
	blocks := []types.ResumeBlock{block("x", "CSS"), block("y", "HTML")}

	got := Tailor("Short", blocks, "")

	assert.Len(t, got.Blocks, 2)
	assert.Equal(t, []string{"x", "y"}, ids(got.Blocks))
}

func TestTailor_EmptyInput(t *testing.T) {
	got := Tailor("", nil, "React")

	assert.Equal(t, "Resume (Tailored)", got.Name)
	assert.NotNil(t, got.Blocks)
	assert.Empty(t, got.Blocks)
}

func TestTailor_DoesNotMutateInput(t *testing.T) {
	blocks := []types.ResumeBlock{block("a", "nothing"), block("b", "Kubernetes")}

	got := Tailor("R", blocks, "Kubernetes")

	assert.Equal(t, []string{"a", "b"}, ids(blocks))
	assert.Equal(t, []string{"b", "a"}, ids(got.Blocks))
	assert.Equal(t, "Kubernetes", got.Blocks[0].Content)
}

func TestTailor_IgnoresTermsOutsideTailoringVocabulary(t *testing.T) {
	blocks := []types.ResumeBlock{block("a", "Generic work"), block("b", "Tailwind styling")}

	got := Tailor("R", blocks, "Tailwind")

	assert.Equal(t, []string{"a", "b"}, ids(got.Blocks))
}

func TestTailoredName(t *testing.T) {
	assert.Equal(t, "Resume (Tailored)", TailoredName("   "))
	assert.Equal(t, "Backend (Tailored)", TailoredName(" Backend "))
}
