package out

import (
	"context"
	"encoding/json"

	"neuradocs/internal/modules/query/domain"
	queryout "neuradocs/internal/modules/query/port/out"
	"neuradocs/internal/platform/backend"
)

type askRequest struct {
	Query string `json:"query"`
}

type HTTPAsker struct {
	client *backend.Client
	path   string
}

func NewHTTPAsker(client *backend.Client, path string) queryout.Asker {
	return &HTTPAsker{client: client, path: path}
}

func (a *HTTPAsker) Ask(ctx context.Context, question string) (domain.Reply, error) {
	resp, err := a.client.PostJSON(ctx, a.path, askRequest{Query: question})
	if err != nil {
		return domain.Reply{}, err
	}
	return decodeReply(resp.Body)
}

// decodeReply reads {"answer": "..."}. An absent, null, empty or non-string
// answer is reported as not found rather than as a failure. Only a non-2xx
// status fails an ask, so an "error" field in a 2xx body is kept as a notice.
func decodeReply(body []byte) (domain.Reply, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return domain.Reply{Degraded: true}, nil
	}
	var reply domain.Reply
	if raw, ok := fields["error"]; ok {
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			reply.Notice = msg
		}
	}
	raw, ok := fields["answer"]
	if !ok {
		return reply, nil
	}
	var answer string
	if err := json.Unmarshal(raw, &answer); err != nil || answer == "" {
		return reply, nil
	}
	reply.Answer = answer
	reply.Found = true
	return reply, nil
}
