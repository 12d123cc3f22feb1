package agents

import (
	"encoding/json"
	"regexp"
	"strings"
)

// replyKind tags the outcome of parsing one model completion.
type replyKind int

const (
	replyNoAction replyKind = iota
	replyAction
	replyFinalAnswer
)

// parsedReply is the tagged result of parseReply. Exactly one of the
// payload field groups is meaningful, selected by kind.
type parsedReply struct {
	kind replyKind

	// replyFinalAnswer
	answer string

	// replyAction
	toolName  string
	toolInput map[string]interface{}
	inputErr  error
}

const finalAnswerMarker = "Final Answer:"

var actionPattern = regexp.MustCompile(`(?s)Action\s*:\s*(\w+)\s*\n\s*Action Input\s*:\s*(\{.*?\})`)

// parseReply classifies one completion: a final answer if the terminal
// marker appears (first occurrence wins), otherwise an action directive
// if one matches, otherwise no action. Malformed action JSON still
// yields replyAction with an empty input map and inputErr set, so the
// caller can invoke the tool and surface the parse failure as an
// observation.
func parseReply(text string) parsedReply {
	if idx := strings.Index(text, finalAnswerMarker); idx >= 0 {
		return parsedReply{
			kind:   replyFinalAnswer,
			answer: strings.TrimSpace(text[idx+len(finalAnswerMarker):]),
		}
	}

	m := actionPattern.FindStringSubmatch(text)
	if m == nil {
		return parsedReply{kind: replyNoAction}
	}

	reply := parsedReply{
		kind:      replyAction,
		toolName:  m[1],
		toolInput: map[string]interface{}{},
	}
	if err := json.Unmarshal([]byte(m[2]), &reply.toolInput); err != nil {
		reply.toolInput = map[string]interface{}{}
		reply.inputErr = err
	}

	return reply
}
