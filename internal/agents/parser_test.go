package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplyFinalAnswer(t *testing.T) {
	reply := parseReply("I have thought about it.\nFinal Answer: BUY with conviction")

	assert.Equal(t, replyFinalAnswer, reply.kind)
	assert.Equal(t, "BUY with conviction", reply.answer)
}

func TestParseReplyFinalAnswerFirstOccurrenceWins(t *testing.T) {
	reply := parseReply("Final Answer: HOLD\nsome trailing text\nFinal Answer: SELL")

	assert.Equal(t, replyFinalAnswer, reply.kind)
	assert.Equal(t, "HOLD\nsome trailing text\nFinal Answer: SELL", reply.answer)
}

func TestParseReplyFinalAnswerBeatsAction(t *testing.T) {
	text := "Action: get_news\nAction Input: {\"symbol\": \"TSLA\"}\nFinal Answer: HOLD"

	reply := parseReply(text)
	assert.Equal(t, replyFinalAnswer, reply.kind)
}

func TestParseReplyAction(t *testing.T) {
	text := "I should check the data first.\nAction: get_fundamentals\nAction Input: {\"symbol\": \"TSLA\"}"

	reply := parseReply(text)
	require.Equal(t, replyAction, reply.kind)
	assert.Equal(t, "get_fundamentals", reply.toolName)
	assert.NoError(t, reply.inputErr)
	assert.Equal(t, "TSLA", reply.toolInput["symbol"])
}

func TestParseReplyActionMultilineJSON(t *testing.T) {
	text := "Action: get_news\nAction Input: {\n  \"symbol\": \"TSLA\",\n  \"limit\": 3\n}"

	reply := parseReply(text)
	require.Equal(t, replyAction, reply.kind)
	assert.Equal(t, "get_news", reply.toolName)
	assert.Equal(t, "TSLA", reply.toolInput["symbol"])
	assert.Equal(t, float64(3), reply.toolInput["limit"])
}

func TestParseReplyActionMalformedInput(t *testing.T) {
	text := "Action: get_news\nAction Input: {\"symbol\": }"

	reply := parseReply(text)
	require.Equal(t, replyAction, reply.kind)
	assert.Equal(t, "get_news", reply.toolName)
	assert.Error(t, reply.inputErr)
	assert.Empty(t, reply.toolInput)
}

func TestParseReplyNoAction(t *testing.T) {
	reply := parseReply("Let me think about this a bit more.")
	assert.Equal(t, replyNoAction, reply.kind)
}
