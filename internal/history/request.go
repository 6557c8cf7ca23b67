package history

import (
	"context"
	"time"

	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/log"
)

// Service is the subset of the record service the coordinator drives.
type Service interface {
	ListHistory(ctx context.Context, p inspection.ListParams) (inspection.Page, error)
	GetHistory(ctx context.Context, id string) (inspection.Record, error)
	DeleteHistory(ctx context.Context, ids []string) error
}

// RequestKind identifies the remote call a Request describes.
type RequestKind int

const (
	KindList RequestKind = iota
	KindGet
	KindDelete
)

func (k RequestKind) String() string {
	switch k {
	case KindGet:
		return "get"
	case KindDelete:
		return "delete"
	default:
		return "list"
	}
}

// Request describes one remote call issued by the coordinator. It carries
// the state it was issued for so the response can be applied without
// consulting anything that may have changed meanwhile.
type Request struct {
	Kind RequestKind
	Seq  uint64

	Filter   Filter
	Page     int
	PageSize int
	Params   inspection.ListParams // KindList
	ID       string                // KindGet
	IDs      []string              // KindDelete
}

// IsFetch reports whether the request reads records.
func (r Request) IsFetch() bool { return r.Kind != KindDelete }

// Response is the outcome of running a Request.
type Response struct {
	Request Request
	Page    inspection.Page   // KindList
	Record  inspection.Record // KindGet
	Err     error
}

// Run executes the request against svc. It never panics on a failed call;
// the error is carried in the Response.
func (r Request) Run(ctx context.Context, svc Service) Response {
	start := time.Now()
	resp := Response{Request: r}
	switch r.Kind {
	case KindList:
		resp.Page, resp.Err = svc.ListHistory(ctx, r.Params)
	case KindGet:
		resp.Record, resp.Err = svc.GetHistory(ctx, r.ID)
	case KindDelete:
		resp.Err = svc.DeleteHistory(ctx, r.IDs)
	}
	if resp.Err != nil {
		log.ErrorErr(log.CatHistory, "request failed", resp.Err,
			"kind", r.Kind.String(), "seq", r.Seq, "filter", r.Filter.Kind().String())
	} else {
		log.Debug(log.CatHistory, "request done",
			"kind", r.Kind.String(), "seq", r.Seq, "duration", time.Since(start))
	}
	return resp
}
