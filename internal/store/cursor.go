package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NullTimestampSentinel stands in for a missing creation timestamp in
// ordering and cursor comparisons. Records never legitimately carry this
// instant, so placing it at a fixed position keeps the sort order total
// without depending on the database's null ordering.
var NullTimestampSentinel = time.UnixMilli(0).UTC()

// ErrInvalidPageToken reports a malformed page token supplied by the
// caller. It is a client error, kept distinct from internal failures all
// the way to the API edge.
var ErrInvalidPageToken = errors.New("invalid page token")

// Cursor is the keyset-pagination position: the sort key of the last row
// on the previous page.
type Cursor struct {
	Timestamp time.Time
	ConfigID  string
}

// EncodePageToken renders a cursor as "<epoch_millis>:<config_id>".
// It never fails; any timestamp (including the sentinel) and any ID
// produce a token.
func EncodePageToken(timestamp time.Time, configID string) string {
	return strconv.FormatInt(timestamp.UnixMilli(), 10) + ":" + configID
}

// DecodePageToken parses a page token back into a cursor. An empty token
// is a valid "first page" request and yields a nil cursor. The config ID
// may itself contain colons; only the first colon separates the fields.
func DecodePageToken(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: must be in 'timestamp_millis:config_id' format", ErrInvalidPageToken)
	}
	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp must be numeric milliseconds", ErrInvalidPageToken)
	}
	return &Cursor{
		Timestamp: time.UnixMilli(millis).UTC(),
		ConfigID:  parts[1],
	}, nil
}

// OrderingTimestamp returns t, or the sentinel when t is unset. It is
// the Go-side twin of the COALESCE used in the Postgres keyset query.
func OrderingTimestamp(t time.Time) time.Time {
	if t.IsZero() {
		return NullTimestampSentinel
	}
	return t
}
