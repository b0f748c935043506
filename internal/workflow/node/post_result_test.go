package node

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LaytonGott/postup-standalone/internal/domain/entity"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
)

const validResult = `{"variations":[{"hookLine":"Busy is the new lazy.","content":"Busy is the new lazy.\n\nShip something."}],"hookAlternatives":[{"text":"Why are you still busy?","style":"question"}],"improvementTips":["Add a number"],"confidenceScore":80}`

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "bare", in: `{"a":1}`, want: `{"a":1}`, ok: true},
		{name: "chatty prefix and suffix", in: "Sure! Here it is:\n{\"a\":{\"b\":2}}\nHope this helps {not json}", want: `{"a":{"b":2}}`, ok: true},
		{name: "braces inside strings", in: `x {"a":"}{","b":"\"}"} y`, want: `{"a":"}{","b":"\"}"}`, ok: true},
		{name: "skips invalid balanced candidate", in: `{oops} then {"a":true}`, want: `{"a":true}`, ok: true},
		{name: "unclosed brace in preamble", in: "Sure :{ here you go\n{\"a\":1}", want: `{"a":1}`, ok: true},
		{name: "format hint before object", in: "Here it is (format: {variations...):\n{\"a\":{\"b\":[1]}}", want: `{"a":{"b":[1]}}`, ok: true},
		{name: "code fence", in: "```json\n{\"a\":[1,2]}\n```", want: `{"a":[1,2]}`, ok: true},
		{name: "no object", in: "no json here", ok: false},
		{name: "unclosed", in: `{"a":1`, ok: false},
		{name: "array only", in: `[1,2,3]`, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGenerationResult_UnclosedBraceInPreamble(t *testing.T) {
	want, _, err := ParseGenerationResult(validResult)
	require.NoError(t, err)

	got, raw, err := ParseGenerationResult("Sure :{ here you go\n" + validResult)
	require.NoError(t, err)
	assert.Equal(t, validResult, raw)
	assert.Equal(t, want, got)
}

func TestParseGenerationResult_ChattyTextMatchesDirectParse(t *testing.T) {
	raw := "Sure! " + validResult + " Let me know if you need more."

	got, extracted, err := ParseGenerationResult(raw)
	require.NoError(t, err)
	assert.Equal(t, validResult, extracted)

	var direct entity.GenerationResult
	require.NoError(t, json.Unmarshal([]byte(validResult), &direct))
	assert.Equal(t, &direct, got)
}

func TestParseGenerationResult_Normalizes(t *testing.T) {
	got, _, err := ParseGenerationResult(`{"variations":[{"content":"\n  First line here\nsecond"}],"confidenceScore":"72.6"}`)
	require.NoError(t, err)

	assert.Equal(t, "First line here", got.Variations[0].HookLine)
	assert.Equal(t, []entity.HookAlternative{}, got.HookAlternatives)
	assert.Equal(t, []string{}, got.ImprovementTips)
	assert.Equal(t, 73, got.ConfidenceScore)
}

func TestParseGenerationResult_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *apperrors.AppError
	}{
		{name: "empty", in: "", want: apperrors.ErrEmptyUpstream},
		{name: "no object", in: "I could not do that.", want: apperrors.ErrMalformedResponse},
		{name: "wrong types", in: `{"variations":"nope"}`, want: apperrors.ErrMalformedResponse},
		{name: "no variations", in: `{"variations":[],"confidenceScore":50}`, want: apperrors.ErrMalformedResponse},
		{name: "empty content", in: `{"variations":[{"hookLine":"h","content":"  "}]}`, want: apperrors.ErrMalformedResponse},
		{name: "bad style", in: `{"variations":[{"content":"c"}],"hookAlternatives":[{"text":"t","style":"meme"}]}`, want: apperrors.ErrMalformedResponse},
		{name: "score out of range", in: `{"variations":[{"content":"c"}],"confidenceScore":101}`, want: apperrors.ErrMalformedResponse},
		{name: "score not a number", in: `{"variations":[{"content":"c"}],"confidenceScore":"high"}`, want: apperrors.ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := ParseGenerationResult(tt.in)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseRefinement(t *testing.T) {
	got, err := ParseRefinement("\n  Shorter post.\n\n")
	require.NoError(t, err)
	assert.Equal(t, "Shorter post.", got)

	got, err = ParseRefinement("   ")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = ParseRefinement("")
	assert.True(t, errors.Is(err, apperrors.ErrEmptyUpstream))
}

func TestIsResponseFormatUnsupportedError(t *testing.T) {
	assert.False(t, IsResponseFormatUnsupportedError(nil))
	assert.True(t, IsResponseFormatUnsupportedError(errors.New("error, status code: 400, message: response_format is not supported")))
	assert.True(t, IsResponseFormatUnsupportedError(errors.New("Unknown parameter: 'response'")))
	assert.False(t, IsResponseFormatUnsupportedError(errors.New("rate limit exceeded")))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "héll", TruncateByRunes("héllo", 4))
	assert.Equal(t, "hi", TruncateByRunes("hi", 10))
	assert.Equal(t, "", TruncateByRunes("hi", 0))
	assert.Equal(t, 5, CountRunes("héllo"))
	assert.Equal(t, 3, CountWords("  one\ttwo\n three "))
	assert.Equal(t, 0, CountWords(" \n "))
}
