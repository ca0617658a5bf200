package quiz

import (
	"fmt"

	"github.com/gosimple/slug"
)

// generateUniqueSlug slugifies the title and probes for collisions,
// appending an incrementing suffix until the slug is free.
func generateUniqueSlug(title string, exists func(string) (bool, error)) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "quiz"
	}

	candidate := base
	for counter := 2; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
