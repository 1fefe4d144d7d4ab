package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/osrs-price-tracker/internal/views"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListJobs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListJobs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500)")
	assert.Contains(t, err.Error(), "internal")
}

func TestClient_ListItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/items", r.URL.Path)
		assert.Equal(t, "rune", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "price", r.URL.Query().Get("order_by"))
		assert.False(t, r.URL.Query().Has("offset"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":1127,"name":"Rune platebody","current_price":38000}],"total":1,"limit":5,"offset":0}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.ListItems(context.Background(), ItemQuery{Search: "rune", Limit: 5, OrderBy: "price"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 1127, res.Items[0].ID)
	assert.InDelta(t, 38000.0, *res.Items[0].CurrentPrice, 1e-9)
	assert.Equal(t, 1, res.Total)
}

func TestClient_GetItem(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/items/385", r.URL.Path)
		_ = json.NewEncoder(w).Encode(domain.ItemWithPrice{Item: domain.Item{ID: 385, Name: "Shark"}})
	}))
	defer srv.Close()

	it, err := New(srv.URL).GetItem(context.Background(), 385)
	require.NoError(t, err)
	assert.Equal(t, "Shark", it.Name)
}

func TestClient_ItemsInPriceRange(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/items/price-range", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("min"))
		assert.Equal(t, "2500.5", r.URL.Query().Get("max"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	items, err := New(srv.URL).ItemsInPriceRange(context.Background(), 100, 2500.5, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_Rankings(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.RequestURI())
		mu.Unlock()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.MostExpensive(context.Background(), 3)
	require.NoError(t, err)
	_, err = c.MostTraded(context.Background(), 0)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"/api/v1/items/most-expensive?limit=3",
		"/api/v1/items/most-traded",
	}, paths)
}

func TestClient_OptimalEquipment(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/optimal/equipment/slash_def", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode([]views.OptimalEquipment{
			{ItemID: 1153, ItemName: "Iron full helm", Slot: domain.SlotHead, AttributeValue: 10, Efficiency: 0.1},
		})
	}))
	defer srv.Close()

	out, err := New(srv.URL).OptimalEquipment(context.Background(), "slash_def", 2)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.SlotHead, out[0].Slot)
	assert.InDelta(t, 0.1, out[0].Efficiency, 1e-12)
}

func TestClient_Consumables(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/consumables":
			_, _ = w.Write([]byte(`[{"item_id":1891,"item_name":"Cake","bites":3,` +
				`"effects":{"heal":{"skill":"hitpoints","amount":12,"efficiency":0.24,"amount_per_bite":4}}}]`))
		case "/api/v1/consumables/healing/top":
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`[{"item_id":1891,"healing":12,"healing_per_gp":0.24}]`))
		case "/api/v1/consumables/search":
			assert.Equal(t, "spicy stew", r.URL.Query().Get("name"))
			_, _ = w.Write([]byte(`[{"item_id":7479,"effects":[{"effect_type":"delayed_heal","amount":9}]}]`))
		case "/api/v1/consumables/effect/delayed_heal":
			_, _ = w.Write([]byte(`[{"item_id":7479,"efficiency":0.015}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	all, err := c.ListConsumables(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.InDelta(t, 4.0, all[0].Effects[domain.EffectHeal].AmountPerBite, 1e-12)

	top, err := c.TopHealing(ctx, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.24, top[0].HealingPerGP, 1e-12)

	found, err := c.SearchConsumables(ctx, "spicy stew")
	require.NoError(t, err)
	assert.Equal(t, domain.EffectDelayedHeal, found[0].Effects[0].EffectType)

	ranked, err := c.ConsumablesByEffect(ctx, "delayed_heal")
	require.NoError(t, err)
	assert.InDelta(t, 0.015, ranked[0].Efficiency, 1e-12)
}

func TestClient_Sync(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sync/equipment", r.URL.Path)
		_, _ = w.Write([]byte(`{"job":"equipment","status":"succeeded",` +
			`"counters":{"attempted":10,"matched":8,"persisted":8,"failed":0},"unmatched":2}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Sync(context.Background(), "equipment")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", res.Status)
	assert.Equal(t, 8, res.Counters.Persisted)
	assert.Equal(t, 2, res.Unmatched)
}

func TestClient_Jobs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/jobs":
			_, _ = w.Write([]byte(`[{"id":"a","job_name":"prices","status":"succeeded"}]`))
		case "/api/v1/jobs/prices":
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`[{"id":"a","job_name":"prices","status":"failed","error_text":"boom"}]`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	latest, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "prices", latest[0].JobName)

	history, err := c.GetJobHistory(context.Background(), "prices", 3)
	require.NoError(t, err)
	assert.Equal(t, "boom", history[0].ErrorText)
}
