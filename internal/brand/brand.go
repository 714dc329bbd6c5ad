package brand

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Brand - one dictionary entry. The source list mixes bare name strings with
// objects carrying a "name" field; both shapes normalize to this struct at
// load time so nothing downstream branches on shape.
type Brand struct {
	Name string `json:"name"`
}

func (that *Brand) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		that.Name = name
		return nil
	}

	var record struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("brand entry is neither a string nor an object: %w", err)
	}

	that.Name = record.Name

	return nil
}

// Equals - case-insensitive comparison against a candidate word.
func (that *Brand) Equals(word string) bool {
	return strings.EqualFold(that.Name, strings.TrimSpace(word))
}
