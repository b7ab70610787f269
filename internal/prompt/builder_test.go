package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "marketai-api/pkg/errors"
)

func TestBuildIsDeterministicForAllCategories(t *testing.T) {
	desc := "Handmade  soap <with> \"quotes\" & unicode ✓\nsecond line"
	for _, c := range Categories() {
		t.Run(string(c), func(t *testing.T) {
			first := Build(string(c), desc)
			assert.Equal(t, first, Build(string(c), desc))
			assert.Contains(t, first, desc)

			tpl, ok := Lookup(string(c))
			require.True(t, ok)
			assert.Contains(t, first, "TASK: "+tpl.Instruction)
			assert.Contains(t, first, "FORMAT: "+tpl.Format)
		})
	}
}

func TestBuildEmail(t *testing.T) {
	out := Build("email", "A reusable coffee mug")
	assert.Contains(t, out, "EMAIL")
	assert.Contains(t, out, "A reusable coffee mug")
	assert.Contains(t, out, templates[CategoryEmail].Instruction)
}

func TestBuildUnknownCategoryFallsBackToSlogan(t *testing.T) {
	out := Build("nonsense", "desc")
	slogan := templates[CategorySlogan]

	assert.Contains(t, out, "CONTENT TYPE: NONSENSE")
	assert.Contains(t, out, slogan.Instruction)
	assert.Contains(t, out, slogan.Format)

	_, ok := Lookup("nonsense")
	assert.False(t, ok)
}

func TestBuildLayout(t *testing.T) {
	want := preamble + "\n\n" +
		"CONTENT TYPE: AD COPY\n\n" +
		"PRODUCT/SERVICE DESCRIPTION:\nFast bikes\n\n" +
		"TASK: " + templates[CategoryAdCopy].Instruction + "\n\n" +
		"FORMAT: " + templates[CategoryAdCopy].Format + "\n\n" +
		requirements + "\n\n" + closing
	assert.Equal(t, want, Build("ad-copy", "Fast bikes"))
	assert.Equal(t, 5, strings.Count(requirements, "\n- "))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "PRODUCT DESCRIPTION", Label("product-description"))
	assert.Equal(t, "HASHTAGS", Label("hashtags"))
	// 只替换第一个连字符
	assert.Equal(t, "A B-C", Label("a-b-c"))
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, ValidateDescription(" mug "))
	assert.ErrorIs(t, ValidateDescription(" \t\n"), apperrors.ErrEmptyDescription)
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cs := Categories()
	cs[0] = "mutated"
	assert.Equal(t, CategorySlogan, Categories()[0])
	assert.Len(t, templates, len(cs))
}
