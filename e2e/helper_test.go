//go:build e2e

package e2e

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/brbranch/notes_mcp/internal/bootstrap"
	"github.com/brbranch/notes_mcp/internal/config"
	"github.com/brbranch/notes_mcp/internal/model"
	"github.com/brbranch/notes_mcp/internal/transport/stdio"
)

// newServices はデフォルトシードで初期化したサービス群を返す
func newServices(t *testing.T, storeType string) *bootstrap.Services {
	t.Helper()
	cfg := config.DefaultConfig("", "")
	cfg.Store.Type = storeType

	services, cleanup, err := bootstrap.Initialize(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(cleanup)
	return services
}

// stdioSession はstdio transportで動くサーバーとSDKクライアントのセッション
type stdioSession struct {
	session *mcp.ClientSession
	changed chan struct{}
}

// connectStdio はパイプでつないだstdioサーバーにSDKクライアントを接続する
func connectStdio(t *testing.T, storeType string) *stdioSession {
	t.Helper()
	services := newServices(t, storeType)

	clientToServerR, clientToServerW := io.Pipe()
	serverToClientR, serverToClientW := io.Pipe()

	server := stdio.New(services.Handler,
		stdio.WithReader(clientToServerR),
		stdio.WithWriter(serverToClientW),
	)
	_, unsubscribe := services.Hub.Subscribe(server.Send)
	t.Cleanup(unsubscribe)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		server.Run(ctx)
		serverToClientW.Close()
	}()

	s := &stdioSession{changed: make(chan struct{}, 8)}
	client := mcp.NewClient(&mcp.Implementation{Name: "e2e", Version: "v0.0.1"}, &mcp.ClientOptions{
		ResourceListChangedHandler: func(context.Context, *mcp.ResourceListChangedRequest) {
			s.changed <- struct{}{}
		},
	})

	connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, &mcp.IOTransport{
		Reader: serverToClientR,
		Writer: clientToServerW,
	}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Connect failed: %v", err)
	}
	s.session = session

	t.Cleanup(func() {
		session.Close()
		cancel()
		clientToServerW.Close()
		<-done
	})
	return s
}

// waitChanged はlist_changed通知を1回待つ
func (s *stdioSession) waitChanged(t *testing.T) {
	t.Helper()
	select {
	case <-s.changed:
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for %s", model.NotificationResourceListChanged)
	}
}

// assertNoMoreChanged は追加の通知がないことを確認する
func (s *stdioSession) assertNoMoreChanged(t *testing.T) {
	t.Helper()
	select {
	case <-s.changed:
		t.Fatalf("unexpected extra %s", model.NotificationResourceListChanged)
	case <-time.After(200 * time.Millisecond):
	}
}

// textOf はContent配列の最初のテキストを返す
func textOf(t *testing.T, content []mcp.Content) string {
	t.Helper()
	if len(content) == 0 {
		t.Fatal("expected at least one content item")
	}
	text, ok := content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected *mcp.TextContent, got %T", content[0])
	}
	return text.Text
}
