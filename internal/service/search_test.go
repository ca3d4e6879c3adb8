package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sous/internal/domain"
)

func searchFixture() *SearchService {
	svc := NewSearchService(discardLogger())
	svc.Index([]*domain.Recipe{
		{ID: 1, Title: "Pancakes", Category: "Breakfast"},
		{ID: 2, Title: "Pancake Cereal", Category: "Breakfast"},
		{ID: 3, Title: "Shakshuka", Category: "Breakfast"},
		{ID: 4, Title: "Beef Ramen", Category: "Dinner"},
	})
	return svc
}

func TestSearchService_IndexDedupes(t *testing.T) {
	svc := NewSearchService(discardLogger())
	svc.Index([]*domain.Recipe{
		{ID: 1, Title: "Toast"},
		{ID: 1, Title: "Toast"},
		{ID: 2, Title: "Oats"},
	})
	require.Equal(t, 2, svc.Count())
}

func TestSearchService_SearchRanksExactFirst(t *testing.T) {
	svc := searchFixture()

	results := svc.Search("pancakes")
	require.NotEmpty(t, results)
	require.Equal(t, "Pancakes", results[0].Title, "exact title match ranks first")

	results = svc.Search("pancake")
	require.Len(t, results, 2)
	require.Equal(t, "Pancake Cereal", results[0].Title, "prefix beats fuzzy")
}

func TestSearchService_SearchMatchesCategory(t *testing.T) {
	svc := searchFixture()

	results := svc.Search("dinner")
	require.Len(t, results, 1)
	require.Equal(t, "Beef Ramen", results[0].Title)
}

func TestSearchService_EmptyQueryIsNil(t *testing.T) {
	svc := searchFixture()
	require.Nil(t, svc.Search(""))
	require.Nil(t, svc.FilterLocal(""))
}

func TestSearchService_FilterLocalReturnsMatchPositions(t *testing.T) {
	svc := searchFixture()

	results := svc.FilterLocal("shak")
	require.NotEmpty(t, results)
	require.Equal(t, "Shakshuka", results[0].Recipe.Title)
	require.Equal(t, []int{0, 1, 2, 3}, results[0].MatchedIndexes)
}

func TestSearchService_ReindexReplaces(t *testing.T) {
	svc := searchFixture()
	require.Equal(t, 4, svc.Count())

	svc.Index([]*domain.Recipe{{ID: 9, Title: "Solo"}})
	require.Equal(t, 1, svc.Count())
	require.Empty(t, svc.Search("pancakes"))
}
