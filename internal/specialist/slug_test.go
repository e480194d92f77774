package specialist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!!":        "hello-world",
		"  Senior DevOps / SRE": "senior-devops-sre",
		"UX---Research":         "ux-research",
		"árbol grande":          "rbol-grande",
		"123 go":                "123-go",
		"---":                   "",
		"   ":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

type stubSlugChecker struct {
	taken map[string]bool
}

func (s stubSlugChecker) Exists(slug string) (bool, error) {
	return s.taken[slug], nil
}

func TestBuildUniqueSlug_NoCollision(t *testing.T) {
	slug, err := BuildUniqueSlug(stubSlugChecker{taken: map[string]bool{}}, "Data Engineer")
	require.NoError(t, err)
	assert.Equal(t, "data-engineer", slug)
}

func TestBuildUniqueSlug_AppendsSuffix(t *testing.T) {
	repo := stubSlugChecker{taken: map[string]bool{
		"data-engineer":   true,
		"data-engineer-2": true,
	}}
	slug, err := BuildUniqueSlug(repo, "Data Engineer")
	require.NoError(t, err)
	assert.Equal(t, "data-engineer-3", slug)
}

func TestBuildUniqueSlug_EmptyTitleFallback(t *testing.T) {
	slug, err := BuildUniqueSlug(stubSlugChecker{taken: map[string]bool{}}, "   ")
	require.NoError(t, err)
	assert.Equal(t, "specialist", slug)

	repo := stubSlugChecker{taken: map[string]bool{"specialist": true}}
	slug, err = BuildUniqueSlug(repo, "!!!")
	require.NoError(t, err)
	assert.Equal(t, "specialist-2", slug)
}

func TestAddMoney(t *testing.T) {
	cases := []struct{ a, b, want string }{
		{"100.00", "0", "100.00"},
		{"10", "0.00", "10.00"},
		{"10.5", "0.25", "10.75"},
		{"0", "0", "0.00"},
		{"99.99", "0.01", "100.00"},
	}
	for _, tc := range cases {
		got, err := addMoney(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "addMoney(%q, %q)", tc.a, tc.b)
	}

	_, err := addMoney("10.999", "0")
	assert.Error(t, err)
	_, err = addMoney("abc", "0")
	assert.Error(t, err)
}
