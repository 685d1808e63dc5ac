package router

import (
	"testing"

	"github.com/poiesic/campusbot/core"
	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	r := New()

	tests := []struct {
		name  string
		query string
		want  core.Collection
	}{
		{"syllabus keyword", "What subjects are in the third semester?", core.CollectionSyllabus},
		{"syllabus direct", "show me the syllabus", core.CollectionSyllabus},
		{"admission keyword", "How do I apply for B.E. CSE?", core.CollectionAdmission},
		{"admission fees", "What are the fees for first year?", core.CollectionAdmission},
		{"food keyword", "what's for lunch today", core.CollectionFoodMenu},
		{"food menu", "Show me the canteen menu.", core.CollectionFoodMenu},
		{"bus keyword", "When does the bus to Tambaram leave?", core.CollectionBusDetails},
		{"bus transport", "Is there transport from Velachery?", core.CollectionBusDetails},
		{"no match", "Tell me a joke", core.CollectionNone},
		{"empty query", "", core.CollectionNone},
		{"punctuation only", "?!...", core.CollectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(tt.query))
		})
	}
}

func TestRoute_CaseInsensitive(t *testing.T) {
	r := New()

	assert.Equal(t, core.CollectionBusDetails, r.Route("BUS ROUTES PLEASE"))
	assert.Equal(t, core.CollectionFoodMenu, r.Route("BREAKFAST timing?"))
}

func TestRoute_PriorityOrder(t *testing.T) {
	r := New()

	// Both vocabularies hit; syllabus outranks food.
	assert.Equal(t, core.CollectionSyllabus, r.Route("is there a course on food science"))

	// Admission outranks bus.
	assert.Equal(t, core.CollectionAdmission, r.Route("do admission forms ask for a bus route"))
}

func TestRoute_WholeWordMatching(t *testing.T) {
	r := New()

	// "busy" must not trigger the bus vocabulary.
	assert.Equal(t, core.CollectionNone, r.Route("I am very busy today"))
	// "feeling" must not trigger "fee".
	assert.Equal(t, core.CollectionNone, r.Route("I am feeling great"))
}

func TestRoute_MultiWordKeyword(t *testing.T) {
	r := New()

	assert.Equal(t, core.CollectionBusDetails, r.Route("where is the nearest bus stop"))
}
