package recordapitest

import (
	"fmt"
	"time"

	"github.com/zjrosen/riceinspect/internal/inspection"
)

// SampleRecords builds n records created an hour apart starting at start,
// alternating between the default standards.
func SampleRecords(n int, start time.Time) []inspection.Record {
	standards := DefaultStandards()
	points := inspection.SamplingPoints()
	out := make([]inspection.Record, 0, n)
	for i := range n {
		std := standards[i%len(standards)]
		created := start.Add(time.Duration(i) * time.Hour)
		sampled := created.Add(-30 * time.Minute)
		out = append(out, inspection.Record{
			Name:             fmt.Sprintf("Sample %02d", i+1),
			StandardID:       std.ID,
			StandardName:     std.Name,
			Note:             fmt.Sprintf("lot %d", 100+i),
			Price:            float64(1000 + 250*i),
			SamplingPoint:    []inspection.SamplingPoint{points[i%len(points)]},
			SamplingDateTime: &sampled,
			CreatedAt:        created,
			Result:           resultFor(std),
		})
	}
	return out
}
