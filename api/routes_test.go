package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/bookgraph/api/handlers"
	"github.com/customeros/bookgraph/config"
	"github.com/customeros/bookgraph/internal/logger"
	"github.com/customeros/bookgraph/internal/metrics"
	"github.com/customeros/bookgraph/internal/repository"
	"github.com/customeros/bookgraph/internal/utils"
	"github.com/customeros/bookgraph/services"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newTestRouter(t *testing.T, cfg *config.GraphQLConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewAppLogger(nil)
	log.InitLogger()

	s, err := services.InitServices("", log, repository.InitSeededRepositories())
	require.NoError(t, err)
	mc := metrics.NewMetricsCollector("bookgraph", "test")
	h, err := handlers.InitHandlers(s, cfg, log, mc)
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r, s, h, mc, "bookgraph")
	return r
}

func defaultGraphQLConfig() *config.GraphQLConfig {
	return &config.GraphQLConfig{
		PlaygroundEnabled:    true,
		IntrospectionEnabled: true,
		ComplexityLimit:      200,
		QueryCacheSize:       10,
		APQCacheSize:         10,
	}
}

type graphqlResponse struct {
	Data   map[string]any   `json:"data"`
	Errors []map[string]any `json:"errors"`
}

func postGraphQL(t *testing.T, r http.Handler, query string) (*httptest.ResponseRecorder, graphqlResponse) {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp graphqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(utils.HeaderRequestId))
}

func TestStatus_ReflectsMutations(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())

	_, resp := postGraphQL(t, r, `mutation { addAuthor(name: "X") { id } }`)
	require.Empty(t, resp.Errors)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","catalog":{"authors":4,"books":8}}`, w.Body.String())
}

func TestGraphQL_Post(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())

	w, resp := postGraphQL(t, r, `{ book(id: 1) { name author { name } } }`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp.Errors)
	book := resp.Data["book"].(map[string]any)
	assert.Equal(t, "Harry Potter and Chamber of Secreats", book["name"])
	assert.Equal(t, "J. K. Rowling", book["author"].(map[string]any)["name"])
}

func TestGraphQL_PostKeepsFieldOrder(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())

	w, _ := postGraphQL(t, r, `{ author(id: 3) { name id } }`)
	assert.Equal(t, `{"data":{"author":{"name":"Brent Weeks","id":3}}}`, strings.TrimSpace(w.Body.String()))
}

func TestGraphQL_Get(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(`{ authors { name } }`), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "J. R. R. Tolkien")
}

func TestGraphQL_MutationOverGetIsRejected(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(`mutation { addAuthor(name: "X") { id } }`), nil))
	assert.Contains(t, w.Body.String(), "errors")

	_, resp := postGraphQL(t, r, `{ authors { id } }`)
	assert.Len(t, resp.Data["authors"], 3)
}

func TestGraphQL_BrowserGetServesPlayground(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "GraphQL playground")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/playground", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGraphQL_PlaygroundDisabled(t *testing.T) {
	cfg := defaultGraphQLConfig()
	cfg.PlaygroundEnabled = false
	r := newTestRouter(t, cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/playground", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGraphQL_Options(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/graphql", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Allow"), "POST")
}

func TestGraphQL_IntrospectionToggle(t *testing.T) {
	query := `{ __schema { queryType { name } } }`

	_, enabled := postGraphQL(t, newTestRouter(t, defaultGraphQLConfig()), query)
	require.Empty(t, enabled.Errors)
	assert.Equal(t, "Query", enabled.Data["__schema"].(map[string]any)["queryType"].(map[string]any)["name"])

	cfg := defaultGraphQLConfig()
	cfg.IntrospectionEnabled = false
	_, disabled := postGraphQL(t, newTestRouter(t, cfg), query)
	require.NotEmpty(t, disabled.Errors)
	assert.Equal(t, "introspection disabled", disabled.Errors[0]["message"])
}

func TestGraphQL_ComplexityLimit(t *testing.T) {
	cfg := defaultGraphQLConfig()
	cfg.ComplexityLimit = 3
	r := newTestRouter(t, cfg)

	_, resp := postGraphQL(t, r, `{ authors { id name books { id name author { name } } } }`)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0]["message"], "complexity")
}

func TestGraphQL_ValidationErrorHasNoData(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())

	_, resp := postGraphQL(t, r, `mutation { addAuthor { id } }`)
	assert.Nil(t, resp.Data)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "GRAPHQL_VALIDATION_FAILED", resp.Errors[0]["extensions"].(map[string]any)["code"])

	_, check := postGraphQL(t, r, `{ authors { id } }`)
	assert.Len(t, check.Data["authors"], 3)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, defaultGraphQLConfig())
	postGraphQL(t, r, `query Catalog { books { id } }`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookgraph_http_requests_total")
	assert.Contains(t, w.Body.String(), `operation="Catalog"`)
}
