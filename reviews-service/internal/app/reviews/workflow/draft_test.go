package workflow

import (
	"testing"

	"bistrobot/reviews-service/internal/app/reviews/entity"

	"github.com/stretchr/testify/assert"
)

func TestApplyGuidelines_MasksWholeWordsOnly(t *testing.T) {
	guidelines := entity.BrandGuidelines{
		WordsToAvoid: []string{"bad"},
	}

	result := applyGuidelines("That was a bad day, but Sinbad liked it", guidelines)

	assert.Equal(t, "That was a *** day, but Sinbad liked it", result)
}

func TestApplyGuidelines_MaskIsCaseInsensitive(t *testing.T) {
	guidelines := entity.BrandGuidelines{
		WordsToAvoid: []string{"terrible"},
	}

	result := applyGuidelines("Terrible service, just TERRIBLE", guidelines)

	assert.Equal(t, "*** service, just ***", result)
}

func TestApplyGuidelines_IncludeCheckIsCaseInsensitive(t *testing.T) {
	guidelines := entity.BrandGuidelines{
		WordsToInclude: []string{"Fresh"},
	}

	// "fresh" уже есть в тексте, дописывать ничего не нужно
	result := applyGuidelines("Everything here is fresh", guidelines)

	assert.Equal(t, "Everything here is fresh", result)
}

func TestApplyGuidelines_AppendsMissingWords(t *testing.T) {
	guidelines := entity.BrandGuidelines{
		WordsToInclude: []string{"fresh", "delicious"},
	}

	result := applyGuidelines("Thank you for your feedback.", guidelines)

	assert.Contains(t, result, "fresh")
	assert.Contains(t, result, "delicious")
}

func TestApplyGuidelines_SkipsBlankEntries(t *testing.T) {
	guidelines := entity.BrandGuidelines{
		WordsToAvoid:   []string{"", "  "},
		WordsToInclude: []string{"", "  "},
	}

	result := applyGuidelines("Thank you for your feedback.", guidelines)

	assert.Equal(t, "Thank you for your feedback.", result)
}

func TestApplyGuidelines_AvoidWordWithRegexChars(t *testing.T) {
	guidelines := entity.BrandGuidelines{
		WordsToAvoid: []string{"so-so"},
	}

	result := applyGuidelines("The soup was so-so today", guidelines)

	assert.Equal(t, "The soup was *** today", result)
}

func TestApplyGuidelines_AvoidWordWithPunctuationEdges(t *testing.T) {
	guidelines := entity.BrandGuidelines{
		WordsToAvoid: []string{"so-so!", "#fail"},
	}

	result := applyGuidelines("Honestly so-so! Total #fail for us", guidelines)

	assert.Equal(t, "Honestly *** Total *** for us", result)
}

func TestApplyGuidelines_MultipleAvoidWordsMasked(t *testing.T) {
	guidelines := entity.BrandGuidelines{
		WordsToAvoid: []string{"bad", "awful"},
	}

	result := applyGuidelines("A bad dish and awful service", guidelines)

	assert.Equal(t, "A *** dish and *** service", result)
}

func TestComposeDraft_NeutralTemplate(t *testing.T) {
	review := &entity.Review{
		Customer:  "Charlie",
		Rating:    4,
		Sentiment: entity.SentimentNeutral,
	}

	draft := composeDraft(review, entity.BrandGuidelines{})

	assert.Contains(t, draft, "Charlie")
	assert.Contains(t, draft, "4-star")
}
