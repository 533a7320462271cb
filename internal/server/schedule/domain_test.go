package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDomain(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"Python Programming", "technology"},
		{"Machine Learning", "technology"},
		{"Bodybuilding", "fitness"},
		{"Spanish", "language"},
		{"Digital Marketing", "business"},
		{"Quantum Physics", "science"},
		{"Jazz Piano", "music"},
		{"Portrait Photography", "creative"},
		{"Italian Cuisine", "culinary"},
		{"Zzyzx", DomainGeneric},
		{"", DomainGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDomain(tt.subject))
		})
	}
}

func TestClassifyDomain_TieGoesToEarlierDomain(t *testing.T) {
	// "nutrition" belongs to both health and culinary with equal weight
	assert.Equal(t, "health", ClassifyDomain("nutrition"))
}
