package convert

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/getmockd/phiremock/pkg/builder"
	"github.com/getmockd/phiremock/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func throughJSON(t *testing.T, m map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(m)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestEncode_WireShape(t *testing.T) {
	e, err := builder.NewExpectation(
		builder.Request(http.MethodPost, "/orders").
			AndHeader("Content-Type", builder.IsEqualTo("application/json")).
			AndBody(builder.Contains("sku")).
			AndScenarioState("checkout", "Scenario.START"),
	).
		Then(builder.Respond(201).AndBody("{}").AndHeader("X", "y").AndDelayInMillis(10)).
		SetNewScenarioState("paid").
		WithPriority(3).
		Build()
	require.NoError(t, err)

	m, err := ExpectationToMap{}.Encode(e)
	require.NoError(t, err)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"scenarioName": "checkout",
		"scenarioStateIs": "Scenario.START",
		"newScenarioState": "paid",
		"request": {
			"method": "POST",
			"url": {"isEqualTo": "/orders"},
			"body": {"contains": "sku"},
			"headers": {"Content-Type": {"isEqualTo": "application/json"}}
		},
		"response": {"statusCode": 201, "body": "{}", "headers": {"X": "y"}, "delayMillis": 10},
		"priority": 3
	}`, string(data))
}

func TestEncode_ResponseMarkers(t *testing.T) {
	base, err := builder.Request(http.MethodGet, "/x").Build()
	require.NoError(t, err)

	withDefault, err := ExpectationToMap{}.Encode(base.WithResponse(domain.DefaultResponse()))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{keyStatusCode: 200}, withDefault[keyResponse])

	withEmpty, err := ExpectationToMap{}.Encode(base.WithResponse(domain.EmptyResponse()))
	require.NoError(t, err)
	v, ok := withEmpty[keyResponse]
	assert.True(t, ok, "empty response must be present on the wire")
	assert.Nil(t, v)

	without, err := ExpectationToMap{}.Encode(base)
	require.NoError(t, err)
	assert.NotContains(t, without, keyResponse)
}

func TestEncode_Nil(t *testing.T) {
	_, err := ExpectationToMap{}.Encode(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidExpectation)
}

func TestDecode_EmptyResponseMarker(t *testing.T) {
	e, err := MapToExpectation{}.Decode(map[string]interface{}{
		"request":  map[string]interface{}{"method": "GET"},
		"response": nil,
	})
	require.NoError(t, err)
	assert.True(t, e.Response.IsEmpty())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]interface{}
	}{
		{name: "nil", in: nil},
		{name: "priority string", in: map[string]interface{}{"priority": "high"}},
		{name: "priority fraction", in: map[string]interface{}{"priority": 1.5}},
		{name: "priority too large", in: map[string]interface{}{"priority": 1e20}},
		{name: "priority too small", in: map[string]interface{}{"priority": -1e20}},
		{name: "priority at 2^63", in: map[string]interface{}{"priority": 9223372036854775808.0}},
		{name: "priority number overflow", in: map[string]interface{}{"priority": json.Number("99999999999999999999")}},
		{name: "status too large", in: map[string]interface{}{"response": map[string]interface{}{"statusCode": 1e19}}},
		{name: "request not object", in: map[string]interface{}{"request": "GET /"}},
		{name: "method not string", in: map[string]interface{}{"request": map[string]interface{}{"method": 1.0}}},
		{name: "url two matchers", in: map[string]interface{}{"request": map[string]interface{}{
			"url": map[string]interface{}{"isEqualTo": "/a", "matches": "/b"},
		}}},
		{name: "unknown matcher", in: map[string]interface{}{"request": map[string]interface{}{
			"url": map[string]interface{}{"startsWith": "/a"},
		}}},
		{name: "non-string matcher value", in: map[string]interface{}{"request": map[string]interface{}{
			"body": map[string]interface{}{"contains": 3.0},
		}}},
		{name: "headers not object", in: map[string]interface{}{"request": map[string]interface{}{"headers": []interface{}{}}}},
		{name: "response not object", in: map[string]interface{}{"response": "ok"}},
		{name: "response header not string", in: map[string]interface{}{"response": map[string]interface{}{
			"statusCode": 200.0, "headers": map[string]interface{}{"X": 1.0},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapToExpectation{}.Decode(tt.in)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestRoundTrip_Fixed(t *testing.T) {
	e, err := builder.NewExpectation(builder.Request(http.MethodGet, "/upstream")).ThenProxyTo("http://backend:8080").Build()
	require.NoError(t, err)

	m, err := ExpectationToMap{}.Encode(e)
	require.NoError(t, err)
	got, err := MapToExpectation{}.Decode(throughJSON(t, m))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestRoundTrip_Random(t *testing.T) {
	faker := gofakeit.New(42)
	matchers := []func(string) domain.Condition{
		builder.IsEqualTo, builder.IsSameString, builder.Matches, builder.Contains, builder.IsSameJSONObject,
	}
	pick := func() func(string) domain.Condition {
		return matchers[faker.Number(0, len(matchers)-1)]
	}

	for i := 0; i < 50; i++ {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			cond := builder.Request(faker.HTTPMethod(), "").AndURL(pick()("/" + faker.Word()))
			for h := faker.Number(0, 3); h > 0; h-- {
				cond = cond.AndHeader("X-"+faker.Word(), pick()(faker.Word()))
			}
			if faker.Bool() {
				cond = cond.AndBody(pick()(faker.Sentence(4)))
			}
			if faker.Bool() {
				cond = cond.AndScenarioState(faker.Word(), faker.Word())
			}

			eb := builder.NewExpectation(cond).WithPriority(faker.Number(0, 10))
			if faker.Bool() {
				resp := builder.Respond(faker.HTTPStatusCode()).AndBody(faker.Sentence(6))
				for h := faker.Number(0, 2); h > 0; h-- {
					resp = resp.AndHeader("X-"+faker.Word(), faker.Word())
				}
				eb = eb.Then(resp.AndDelayInMillis(faker.Number(0, 1000)))
			} else {
				eb = eb.ThenProxyTo(faker.URL())
			}
			if faker.Bool() {
				eb = eb.SetNewScenarioState(faker.Word())
			}

			e, err := eb.Build()
			if err != nil {
				// A new scenario state needs a scenario name.
				require.ErrorIs(t, err, domain.ErrInvalidExpectation)
				return
			}

			m, err := ExpectationToMap{}.Encode(e)
			require.NoError(t, err)
			got, err := MapToExpectation{}.Decode(throughJSON(t, m))
			require.NoError(t, err)
			assert.Equal(t, e, got)
		})
	}
}
