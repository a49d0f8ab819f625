package progression

import "net/http"

// Response is the forgiving counterpart of Parse: it carries either a
// payload or the reason parsing failed, never both.
type Response struct {
	Status  int       `json:"status"`
	Message string    `json:"message"`
	Payload *Sequence `json:"payload,omitempty"`
}

// OK reports whether the response carries a payload.
func (r Response) OK() bool {
	return r.Status == http.StatusOK
}

// Describe parses spec and wraps the outcome. It never fails; errors become
// a 400 response whose message is prefixed with "Parse fail: ".
func Describe(spec string, opts ...Option) Response {
	seq, err := Parse(spec, opts...)
	if err != nil {
		return Response{
			Status:  http.StatusBadRequest,
			Message: "Parse fail: " + err.Error(),
		}
	}
	return Response{
		Status:  http.StatusOK,
		Message: "OK",
		Payload: seq,
	}
}
