package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_RoundTripKeepsUnknownFields(t *testing.T) {
	in := `[{"id":"m1","title":"Stellar 101","nodes":[{"id":"n1","courseId":"c1","title":"Intro","x":1.5,"y":2}],"theme":{"color":"#fff"}}]`

	var maps []Map
	require.NoError(t, json.Unmarshal([]byte(in), &maps))
	require.Len(t, maps, 1)
	assert.Equal(t, "m1", maps[0].ID)
	assert.Equal(t, "c1", maps[0].Nodes[0].CourseID)

	out, err := json.Marshal(maps)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestMarshal_EditedFieldsWin(t *testing.T) {
	in := `{"courseId":"c1","completedSteps":["s1"],"completed":false,"score":10}`

	var p Progress
	require.NoError(t, json.Unmarshal([]byte(in), &p))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	p.Completed = true
	p.CompletedSteps = append(p.CompletedSteps, "s2")
	out, err = json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"courseId":"c1","completedSteps":["s1","s2"],"completed":true}`, string(out))

	var c Course
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","title":"Old","steps":[],"level":"easy"}`), &c))
	c.Title = "New"
	out, err = json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1","title":"New","steps":[]}`, string(out))

	var m Map
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m1","title":"M","nodes":[{"id":"n1","courseId":"c1","title":"N","x":1,"y":2}],"theme":"dark"}`), &m))
	m.Nodes[0].X = 5
	out, err = json.Marshal(m)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "theme")
	assert.Contains(t, string(out), `"x":5`)
}

func TestCourse_MarshalWithoutRaw(t *testing.T) {
	c := Course{ID: "c1", Title: "T", Steps: []Step{{ID: "s1", Title: "S", Type: StepTypeQuiz, Quiz: &Quiz{Question: "q", Options: []string{"a", "b"}}}}}

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1","title":"T","steps":[{"id":"s1","title":"S","type":"quiz","quiz":{"question":"q","options":["a","b"]}}]}`, string(out))
	assert.Nil(t, c.Raw())

	s, ok := c.Step("s1")
	require.True(t, ok)
	assert.Equal(t, StepTypeQuiz, s.Type)

	_, ok = c.Step("nope")
	assert.False(t, ok)
}

func TestProgress_RawIsACopy(t *testing.T) {
	in := []byte(`{"courseId":"c1","completedSteps":["s1"],"completed":false,"score":10}`)

	var p Progress
	require.NoError(t, json.Unmarshal(in, &p))
	in[2] = 'X'

	assert.Equal(t, "c1", p.CourseID)
	assert.Equal(t, []string{"s1"}, p.CompletedSteps)
	assert.JSONEq(t, `{"courseId":"c1","completedSteps":["s1"],"completed":false,"score":10}`, string(p.Raw()))
}

func TestCompleteStepResult_NestedProgressKeepsRaw(t *testing.T) {
	in := `{"success":true,"progress":{"courseId":"c1","completedSteps":["s1","s2"],"completed":true,"badge":"gold"}}`

	var r CompleteStepResult
	require.NoError(t, json.Unmarshal([]byte(in), &r))
	require.NotNil(t, r.Progress)
	assert.True(t, r.Progress.Completed)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestStepPayload_JSON(t *testing.T) {
	two := 2

	b, err := json.Marshal(&StepPayload{SelectedOptionIndex: &two})
	require.NoError(t, err)
	assert.Equal(t, `{"selectedOptionIndex":2}`, string(b))

	zero := 0
	b, err = json.Marshal(&StepPayload{SelectedOptionIndex: &zero})
	require.NoError(t, err)
	assert.Equal(t, `{"selectedOptionIndex":0}`, string(b))

	b, err = json.Marshal(&StepPayload{TxHash: "abc"})
	require.NoError(t, err)
	assert.Equal(t, `{"txHash":"abc"}`, string(b))

	assert.True(t, (*StepPayload)(nil).Empty())
	assert.True(t, (&StepPayload{}).Empty())
	assert.False(t, (&StepPayload{TxHash: "x"}).Empty())
}

func TestStepPayloadFromArgs(t *testing.T) {
	p, err := StepPayloadFromArgs(nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = StepPayloadFromArgs([]string{"answer=2", "tx=0xabc"})
	require.NoError(t, err)
	require.NotNil(t, p.SelectedOptionIndex)
	assert.Equal(t, 2, *p.SelectedOptionIndex)
	assert.Equal(t, "0xabc", p.TxHash)

	for _, bad := range [][]string{{"answer"}, {"answer="}, {"answer=x"}, {"answer=-1"}, {"color=red"}} {
		_, err := StepPayloadFromArgs(bad)
		assert.ErrorIs(t, err, ErrIncorrectArgument, "%v", bad)
	}
}
