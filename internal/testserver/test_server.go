package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/statusdeck/internal/mcp"
	"github.com/rpggio/statusdeck/internal/sqlite"
	"github.com/rpggio/statusdeck/internal/store"
)

// TestServer hosts the MCP server over streamable HTTP for functional
// tests, backed by a shared in-memory SQLite database.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Store  *store.Store
}

// New starts a server whose database lives for the duration of the test.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	st, err := store.Open(context.Background(), sqlite.NewBlobRepository(db), nil)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{Board: st})

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server: server,
		DB:     db,
		Store:  st,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// MCPEndpoint returns the URL MCP clients should connect to.
func (ts *TestServer) MCPEndpoint() string {
	return ts.Server.URL + "/mcp"
}
