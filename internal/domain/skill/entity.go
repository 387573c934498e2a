package skill

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeName trims and lower-cases a skill name so "Node.js" and " node.js"
// resolve to the same row.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Join(strings.Fields(name), " ")
	return strings.ToLower(name)
}

// Usage is how many profiles list a skill.
type Usage struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Count int64     `json:"count"`
}
