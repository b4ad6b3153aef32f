package messaging

import (
	"fmt"

	"github.com/pixil98/go-worldsync/internal/store"
)

// Subjects maps store queries and rows onto nats subjects.
//
//	<prefix>.<table>.all                 rows of unpartitioned tables
//	<prefix>.<table>.<column>.<value>    rows of partitioned tables
//	<prefix>.control.subscribe           initial row requests
//	<prefix>.control.write               row writes for the dev store
type Subjects struct {
	Prefix string
}

// Query is the subject a subscription for q listens on.
func (s Subjects) Query(q store.Query) string {
	if q.Filter == nil {
		return fmt.Sprintf("%s.%s.>", s.Prefix, q.Table)
	}
	return fmt.Sprintf("%s.%s.%s.%d", s.Prefix, q.Table, q.Filter.Column, q.Filter.Value)
}

// Row is the subject a change to a row in partition is published on.
func (s Subjects) Row(table string, partition *store.Filter) string {
	if partition == nil {
		return fmt.Sprintf("%s.%s.all", s.Prefix, table)
	}
	return fmt.Sprintf("%s.%s.%s.%d", s.Prefix, table, partition.Column, partition.Value)
}

func (s Subjects) Subscribe() string {
	return s.Prefix + ".control.subscribe"
}

func (s Subjects) Write() string {
	return s.Prefix + ".control.write"
}
