package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propchat/propchat/llm"
)

func TestFuzzyContextCapsLists(t *testing.T) {
	st := &fakeStore{}
	for i := 0; i < maxFuzzyCities+5; i++ {
		st.cities = append(st.cities, fmt.Sprintf("City %d", i))
	}
	st.developers = []string{"Casagrand Builder Private Limited"}

	out := FuzzyContext(context.Background(), st, "")
	assert.Contains(t, out, "AVAILABLE DATA IN DATABASE")
	assert.Contains(t, out, fmt.Sprintf("City %d", maxFuzzyCities-1))
	assert.NotContains(t, out, fmt.Sprintf("City %d,", maxFuzzyCities))
	assert.Contains(t, out, "(and 5 more)")
	assert.Contains(t, out, "Casagrand Builder Private Limited")
}

func TestFuzzyContextEmptyDatabase(t *testing.T) {
	out := FuzzyContext(context.Background(), &fakeStore{}, "")
	assert.Empty(t, out)
}

func TestNormalizeCityExactMatchSkipsModel(t *testing.T) {
	gw := &fakeGateway{composeErr: &llm.Error{Kind: llm.KindConnection, Message: "down"}}
	st := &fakeStore{cities: []string{"Bangalore", "Chennai"}}

	got := NormalizeCity(context.Background(), gw, st, "bangalore")
	assert.Equal(t, "Bangalore", got)
	assert.Empty(t, gw.calls)
}

func TestNormalizeCityViaModel(t *testing.T) {
	gw := &fakeGateway{composeReply: "Bangalore"}
	st := &fakeStore{cities: []string{"Bangalore", "Chennai"}}

	got := NormalizeCity(context.Background(), gw, st, "bangalor")
	assert.Equal(t, "Bangalore", got)
}

func TestNormalizeCityUnverifiableReplyFallsBack(t *testing.T) {
	gw := &fakeGateway{composeReply: "Atlantis"}
	st := &fakeStore{cities: []string{"Bangalore", "Chennai"}}

	got := NormalizeCity(context.Background(), gw, st, "bangalor")
	assert.Equal(t, "bangalor", got)
}

func TestNormalizeCityGatewayErrorFallsBack(t *testing.T) {
	gw := &fakeGateway{composeErr: &llm.Error{Kind: llm.KindTimeout, Message: "timeout"}}
	st := &fakeStore{cities: []string{"Bangalore"}}

	got := NormalizeCity(context.Background(), gw, st, "mumbay")
	assert.Equal(t, "mumbay", got)
}
