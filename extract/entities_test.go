package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntities(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "people date and money",
			text: "Sarah Johnson approved the AWS budget of $5,000 on March 3rd, 2025.",
			want: []string{"Sarah Johnson", "March 3rd, 2025", "$5,000"},
		},
		{
			name: "single capitalized word is not a phrase",
			text: "The AWS budget review happens after Sarah Johnson signs off.",
			want: []string{"Sarah Johnson"},
		},
		{
			name: "duplicates removed",
			text: "Sarah Johnson met Sarah Johnson. Up 10% then 10% again.",
			want: []string{"Sarah Johnson", "10%"},
		},
		{
			name: "nothing to find",
			text: "nothing capitalized here at all",
			want: []string{},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Entities(tt.text))
		})
	}
}

func TestEntitiesIdempotent(t *testing.T) {
	text := "Acme Corp paid $1,250.50 to John Smith on 12/03/2024, up 4.5 percent."
	assert.Equal(t, Entities(text), Entities(text))
}

func TestPatternScans(t *testing.T) {
	t.Run("dates", func(t *testing.T) {
		assert.Equal(t,
			[]string{"June 5, 2024", "December 21st 2023", "12/03/2024", "1/2/25"},
			Dates("On June 5, 2024 and December 21st 2023, then 12/03/2024 or 1/2/25."))
	})

	t.Run("statistics", func(t *testing.T) {
		assert.Equal(t, []string{"12%", "4.5 percent"}, Statistics("Revenue grew 12% while costs fell 4.5 percent"))
	})

	t.Run("money", func(t *testing.T) {
		assert.Equal(t, []string{"$1,250.50", "300 dollars"}, Money("It cost $1,250.50 or about 300 dollars"))
	})

	t.Run("proper nouns", func(t *testing.T) {
		assert.Equal(t, []string{"Maria Lopez", "New York City"}, ProperNouns("Maria Lopez moved to New York City last year"))
	})
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"AWS", "Budget", "Cost"}, Unique([]string{"AWS", "aws", "Budget"}, []string{"budget", "Cost"}))
	assert.NotNil(t, Unique())
	assert.Empty(t, Unique())
}

func TestCategorize(t *testing.T) {
	c := Categorize("Maria Lopez from Acme Corp met the NASA team in New York on June 5, 2024.")

	assert.Equal(t, []string{"Maria Lopez"}, c.People)
	assert.Equal(t, []string{"Acme Corp", "NASA"}, c.Organizations)
	assert.Equal(t, []string{"New York"}, c.Places)
	assert.Equal(t, []string{"June 5, 2024"}, c.Dates)
	assert.Empty(t, c.Statistics)
	assert.Empty(t, c.Money)
	assert.Equal(t, []string{"Maria Lopez", "Acme Corp", "NASA", "New York", "June 5, 2024"}, c.All())
}

func TestCategorizeCalendarPhrases(t *testing.T) {
	c := Categorize("The launch slipped to Monday Morning and then in March Madness.")
	assert.Empty(t, c.People)
	assert.Empty(t, c.Places)
}

func TestCategorizeEmpty(t *testing.T) {
	c := Categorize("")
	assert.Empty(t, c.People)
	assert.Empty(t, c.Organizations)
	assert.Empty(t, c.Places)
	assert.Empty(t, c.All())
}

func TestTopics(t *testing.T) {
	docs := [][]string{
		{"apple", "banana", "apple"},
		{"banana", "cherry"},
	}

	assert.Equal(t, [][]string{{"apple", "banana"}, {"cherry", "banana"}}, Topics(docs, 0))
	assert.Equal(t, [][]string{{"apple"}, {"cherry"}}, Topics(docs, 1))

	t.Run("empty document", func(t *testing.T) {
		got := Topics([][]string{{}, {"banana"}}, MaxTopics)
		assert.Empty(t, got[0])
		assert.Equal(t, []string{"banana"}, got[1])
	})

	t.Run("capped", func(t *testing.T) {
		doc := Tokenize("alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima")
		got := Topics([][]string{doc}, 0)
		assert.Len(t, got[0], MaxTopics)
		assert.Equal(t, doc[:MaxTopics], got[0])
	})
}
