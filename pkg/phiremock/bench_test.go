package phiremock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getmockd/phiremock/pkg/builder"
	"github.com/getmockd/phiremock/pkg/connection"
	"github.com/getmockd/phiremock/pkg/domain"
	"github.com/getmockd/phiremock/pkg/transport"
)

// =============================================================================
// Client Benchmarks
// =============================================================================

// discard answers every request with a fixed reply without recording it.
func discard(status int, body string) transport.Func {
	return func(_ *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		rec.WriteHeader(status)
		_, _ = rec.WriteString(body)
		return rec.Result(), nil
	}
}

func benchExpectation(b *testing.B) *domain.Expectation {
	b.Helper()
	e, err := OnRequest(http.MethodPost, "/api/orders").
		Then(builder.Respond(http.StatusCreated).
			AndHeader("Content-Type", "application/json").
			AndBody(`{"id": 42, "items": [{"sku": "a-1", "qty": 2}]}`)).
		SetNewScenarioState("ordered").
		Build()
	if err != nil {
		b.Fatal(err)
	}
	e.ScenarioName = "checkout"
	return e
}

func BenchmarkCreateExpectation(b *testing.B) {
	endpoint, _ := connection.NewEndpoint("localhost", 8086)
	c := New(endpoint, WithTransport(discard(http.StatusCreated, "")))
	e := benchExpectation(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if err := c.CreateExpectation(ctx, e); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCountExecutions(b *testing.B) {
	endpoint, _ := connection.NewEndpoint("localhost", 8086)
	c := New(endpoint, WithTransport(discard(http.StatusOK, `{"count": 12}`)))
	query := builder.Request(http.MethodGet, "/api/users")
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := c.CountExecutions(ctx, query); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkListExpectations(b *testing.B) {
	e := benchExpectation(b)
	endpoint, _ := connection.NewEndpoint("localhost", 8086)
	enc := New(endpoint)
	one, err := enc.marshalExpectation(e)
	if err != nil {
		b.Fatal(err)
	}
	list := "["
	for i := range 50 {
		if i > 0 {
			list += ","
		}
		list += string(one)
	}
	list += "]"

	c := New(endpoint, WithTransport(discard(http.StatusOK, list)))
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		got, err := c.ListExpectations(ctx)
		if err != nil {
			b.Fatal(err)
		}
		if len(got) != 50 {
			b.Fatalf("got %d expectations", len(got))
		}
	}
}

// BenchmarkCountExecutions_Loopback measures a full round trip over TCP.
func BenchmarkCountExecutions_Loopback(b *testing.B) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 3}`))
	}))
	defer srv.Close()

	c := New(endpointOf(b, srv.URL), WithTransport(srv.Client()))
	query := builder.Request(http.MethodGet, "/api/users")
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := c.CountExecutions(ctx, query); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
