package domain_test

import (
	"testing"
	"time"

	"lumina/internal/modules/library/domain"
)

func TestDocumentValidate(t *testing.T) {
	t.Parallel()
	valid := domain.Document{ID: "id-1", Name: "a.pdf", Size: 10, CreatedAt: time.Now()}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}

	cases := map[string]domain.Document{
		"missing id":    {Name: "a.pdf", Size: 1},
		"blank name":    {ID: "id-1", Name: "   ", Size: 1},
		"negative size": {ID: "id-1", Name: "a.pdf", Size: -1},
	}
	for name, doc := range cases {
		if err := doc.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
