package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

// SearchHistoryItem is one committed search in a client's history. At most
// one entry exists per case-insensitive query text.
type SearchHistoryItem struct {
	ID          uuid.UUID        `json:"id"`
	Query       string           `json:"query"`
	CreatedAt   time.Time        `json:"createdAt"`
	ResultCount *int             `json:"resultCount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Type        enums.SearchType `json:"type"`
}

// PopularSearch tracks how often a query text has been committed.
type PopularSearch struct {
	Query    string           `json:"query"`
	Count    int              `json:"count"`
	Category *string          `json:"category,omitempty"`
	Type     enums.SearchType `json:"type"`
}

// AddParams carries the optional metadata recorded with a committed search.
type AddParams struct {
	ResultCount *int
	Category    *string
	Type        enums.SearchType
}
