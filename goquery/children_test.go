package goquery_test

import (
	"testing"

	"coursetree"
	"coursetree/goquery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const courseURL = "https://learn.example.com/en-us/training/courses/az-900t00"

func TestExtractor_ExtractTitle(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	assert.Equal(t, "Azure Fundamentals",
		e.ExtractTitle(`<html><body><h1>  Azure
		Fundamentals </h1></body></html>`))
	assert.Equal(t, "", e.ExtractTitle(`<html><body><p>no heading</p></body></html>`))
}

func TestExtractor_ExtractChildren_LearningPaths(t *testing.T) {
	t.Parallel()

	t.Run("discovers paths from data-learn-uid articles", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article data-learn-uid="learn.wwl.describe-cloud-concepts"></article>
<article data-learn-uid="learn.wwl.describe-azure-architecture"></article>
</body></html>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, courseURL, coursetree.ChildLearningPaths)

		require.NoError(t, err)
		require.Len(t, refs, 2)
		assert.Equal(t, "Describe Cloud Concepts", refs[0].Title)
		assert.Equal(t, "https://learn.example.com/en-us/training/paths/describe-cloud-concepts/", refs[0].URL)
		assert.Equal(t, "https://learn.example.com/en-us/training/paths/describe-azure-architecture/", refs[1].URL)
	})

	t.Run("prefers the card heading over the humanized slug", func(t *testing.T) {
		t.Parallel()

		html := `<article data-learn-uid="learn.wwl.describe-cloud-concepts">
<h3>Microsoft Azure Fundamentals: Describe cloud concepts</h3>
</article>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, courseURL, coursetree.ChildLearningPaths)

		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "Microsoft Azure Fundamentals: Describe cloud concepts", refs[0].Title)
	})

	t.Run("ignores articles without a learn UID", func(t *testing.T) {
		t.Parallel()

		html := `<article data-learn-uid="promo.banner"></article><article></article>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, courseURL, coursetree.ChildLearningPaths)

		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("deduplicates by URL keeping first occurrence", func(t *testing.T) {
		t.Parallel()

		html := `<article data-learn-uid="learn.wwl.describe-cloud-concepts"></article>
<article data-learn-uid="learn.wwl.describe-cloud-concepts"></article>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, courseURL, coursetree.ChildLearningPaths)

		require.NoError(t, err)
		assert.Len(t, refs, 1)
	})

	t.Run("carries locale and host from the course URL", func(t *testing.T) {
		t.Parallel()

		html := `<article data-learn-uid="learn.wwl.intro"></article>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, "https://learn.example.com/de-de/training/courses/az-900t00", coursetree.ChildLearningPaths)

		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "https://learn.example.com/de-de/training/paths/intro/", refs[0].URL)
	})
}

func TestExtractor_ExtractChildren_Modules(t *testing.T) {
	t.Parallel()

	const pathURL = "https://learn.example.com/en-us/training/paths/cloud-concepts/"

	t.Run("extracts module anchors in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
<a href="../../modules/describe-cloud-compute/">Describe cloud computing</a>
<a href="/en-us/training/modules/describe-benefits-use-cloud-services/">Describe the benefits</a>
</main></body></html>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, pathURL, coursetree.ChildModules)

		require.NoError(t, err)
		require.Len(t, refs, 2)
		assert.Equal(t, "Describe cloud computing", refs[0].Title)
		assert.Equal(t, "https://learn.example.com/en-us/training/modules/describe-cloud-compute/", refs[0].URL)
		assert.Equal(t, "https://learn.example.com/en-us/training/modules/describe-benefits-use-cloud-services/", refs[1].URL)
	})

	t.Run("deduplicates summary and detail listings", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
<a href="../../modules/describe-cloud-compute/">Describe cloud computing</a>
</ul>
<section>
<a href="../../modules/describe-cloud-compute/">Describe cloud computing in detail</a>
</section>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, pathURL, coursetree.ChildModules)

		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "Describe cloud computing", refs[0].Title)
	})

	t.Run("strips numbering residue from titles", func(t *testing.T) {
		t.Parallel()

		html := `<a href="../../modules/describe-cloud-compute/">1. Describe cloud computing</a>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, pathURL, coursetree.ChildModules)

		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "Describe cloud computing", refs[0].Title)
	})

	t.Run("skips external hosts and untitled anchors", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://elsewhere.example.org/modules/spam/">Spam</a>
<a href="../../modules/untitled/"></a>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, pathURL, coursetree.ChildModules)

		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("returns empty sequence for markup without module listings", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(`<html><body><p>nothing here</p></body></html>`, pathURL, coursetree.ChildModules)

		require.NoError(t, err)
		assert.Empty(t, refs)
	})
}

func TestExtractor_ExtractChildren_Units(t *testing.T) {
	t.Parallel()

	const moduleURL = "https://learn.example.com/en-us/training/modules/describe-cloud-compute/"

	t.Run("extracts numbered units sorted by unit number", func(t *testing.T) {
		t.Parallel()

		html := `<nav aria-label="units">
<a href="3-describe-iaas">Describe IaaS</a>
<a href="1-introduction">Introduction</a>
<a href="2-what-is-cloud-computing">What is cloud computing?</a>
</nav>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, moduleURL, coursetree.ChildUnits)

		require.NoError(t, err)
		require.Len(t, refs, 3)
		assert.Equal(t, "Introduction", refs[0].Title)
		assert.Equal(t, moduleURL+"1-introduction", refs[0].URL)
		assert.Equal(t, "What is cloud computing?", refs[1].Title)
		assert.Equal(t, "Describe IaaS", refs[2].Title)
	})

	t.Run("orders keyword units by convention", func(t *testing.T) {
		t.Parallel()

		html := `<a href="summary">Summary</a>
<a href="knowledge-check">Knowledge check</a>
<a href="1-introduction">Introduction</a>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, moduleURL, coursetree.ChildUnits)

		require.NoError(t, err)
		require.Len(t, refs, 3)
		assert.Equal(t, "Introduction", refs[0].Title)
		assert.Equal(t, "Knowledge check", refs[1].Title)
		assert.Equal(t, "Summary", refs[2].Title)
	})

	t.Run("deduplicates by URL keeping first occurrence", func(t *testing.T) {
		t.Parallel()

		html := `<a href="1-introduction">Introduction</a>
<a href="1-introduction">Introduction (again)</a>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, moduleURL, coursetree.ChildUnits)

		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "Introduction", refs[0].Title)
	})

	t.Run("ignores links outside the module path", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/en-us/training/modules/other-module/1-introduction">Other intro</a>
<a href="1-introduction">Introduction</a>`

		e := goquery.NewExtractor()
		refs, err := e.ExtractChildren(html, moduleURL, coursetree.ChildUnits)

		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, moduleURL+"1-introduction", refs[0].URL)
	})
}

func TestExtractor_ExtractChildren_InvalidInput(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	_, err := e.ExtractChildren("<html></html>", "://bad-url", coursetree.ChildModules)
	require.Error(t, err)
	assert.Equal(t, coursetree.EINVALID, coursetree.ErrorCode(err))

	_, err = e.ExtractChildren("<html></html>", courseURL, coursetree.ChildKind("bogus"))
	require.Error(t, err)
	assert.Equal(t, coursetree.EINVALID, coursetree.ErrorCode(err))
}
