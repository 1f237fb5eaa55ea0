// Package enterprise holds the tenants the signed-in user administers and
// the two mirror slots other stores write into after their own mutations.
package enterprise

import (
	"github.com/orgdesk/admin/internal/record"
)

// Enterprise is one tenant. A group of enterprises has one headquarters.
type Enterprise struct {
	ID           record.ID   `json:"id"`
	Name         string      `json:"name"`
	Document     string      `json:"document,omitempty"`
	Headquarters record.Flag `json:"headquarters"`
	CounterID    record.ID   `json:"counter_id"`
	DataComplete record.Flag `json:"data_complete"`
}

type CreateParams struct {
	Name         string `json:"name"`
	Document     string `json:"document,omitempty"`
	Headquarters bool   `json:"headquarters"`
}

//go:generate mockgen -source=enterprise.go -destination=sink_mock.go -package=enterprise

// LinkageSink receives the id of the counter linked to the enterprise in
// view. An empty id clears the linkage.
type LinkageSink interface {
	SetCounterLinkage(id record.ID)
}

// ViewSink receives the enterprise put in view. The receiver derives the
// headquarters flag and the linked counter from it.
type ViewSink interface {
	SetView(e Enterprise)
}
