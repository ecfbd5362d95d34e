package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange parses start/end query parameters. A missing end defaults to
// today (UTC) and a missing start to one year before end, mirroring the
// dashboard's default query window. Range ordering is validated by the
// ingestor, not here.
func DateRange(r *http.Request) (start, end time.Time, err error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)

	end = now
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err = time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q, want YYYY-MM-DD", raw)
		}
	}

	start = end.AddDate(-1, 0, 0)
	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err = time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q, want YYYY-MM-DD", raw)
		}
	}

	return start, end, nil
}

// IntParam parses an optional integer query parameter
func IntParam(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q, want an integer", name, raw)
	}
	return val, nil
}

// BadRequest writes a 400 with the given message
func BadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, `{"error":%q}`+"\n", message)
}
