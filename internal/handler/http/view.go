package http

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
)

// operationContext detaches controller work from the caller so a client
// that disconnects mid-request cannot leave a screen in a failed state.
func operationContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// writeOutcome answers with the screen snapshot. Errors already recorded in
// the snapshot (failed fetches, form errors) are not HTTP failures; refused
// operations are.
func writeOutcome(w http.ResponseWriter, err error, snapshot interface{}) {
	if err != nil && response.IsGuard(err) {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}
