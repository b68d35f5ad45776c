package obs

import (
	"context"
	"log"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Operations slower than this are flagged with slow=true.
var SlowThreshold = 2 * time.Second

// Time starts timing an operation; call the returned func when it finishes,
// usually deferred with a pointer to the named error result (or nil).
//
//	defer obs.Time(ctx, "ors.Matrix")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		line := "req_id=" + requestID(ctx) + " op=" + name + " dur=" + dur.Round(time.Millisecond).String()
		if dur >= SlowThreshold {
			line += " slow=true"
		}
		if errp != nil && *errp != nil {
			log.Printf("%s err=%v", line, *errp)
			return
		}
		log.Print(line)
	}
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}
