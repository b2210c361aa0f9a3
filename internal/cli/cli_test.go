// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/userdir/config"
	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/stats"
)

const testConfig = `
log_level = "error"
flush_interval = "0s"

[store]
backend = "bolt"
path = %q

[[profiles]]
id = 100
display_name = "Ann"
secondary_name = "Lee"
screen_name = "ann"

[[profiles]]
id = -5
display_name = "Readers"
screen_name = "readers"
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "userdir.toml")
	content := fmt.Sprintf(testConfig, filepath.Join(dir, "users.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := &cobra.Command{Use: "userdir", SilenceUsage: true, SilenceErrors: true}
	rootCmd.PersistentFlags().String(ConfigFlag, "", "")
	rootCmd.AddCommand(ResolveCmd(), GetCmd(), ServeCmd())

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestResolveCmd(t *testing.T) {
	path := writeConfig(t)

	out, err := execute(t, "resolve", "--config", path, "[id100|Ann]", "@ann", "readers", "somebody")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann Lee")
	assert.Contains(t, out, "https://vk.com/id100")
	assert.Contains(t, out, "readers: not a user")
	assert.Contains(t, out, "somebody: not a user")

	t.Run("unknown profile fails", func(t *testing.T) {
		_, err := execute(t, "resolve", "--config", path, "id999")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrResolution)
	})

	t.Run("requires an argument", func(t *testing.T) {
		_, err := execute(t, "resolve", "--config", path)
		assert.Error(t, err)
	})
}

func TestGetCmd(t *testing.T) {
	path := writeConfig(t)

	_, err := execute(t, "get", "--config", path, "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	out, err := execute(t, "get", "--config", path, "--create", "--", "-5")
	require.NoError(t, err)
	assert.Contains(t, out, "Readers")
	assert.Contains(t, out, "https://vk.com/club5")

	// resolve persists the record, get reads it back from the store
	_, err = execute(t, "resolve", "--config", path, "100")
	require.NoError(t, err)
	out, err = execute(t, "get", "--config", path, "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann Lee")

	_, err = execute(t, "get", "--config", path, "abc")
	assert.ErrorIs(t, err, errors.ErrInvalidIdentity)
	_, err = execute(t, "get", "--config", path, "0")
	assert.ErrorIs(t, err, errors.ErrInvalidIdentity)
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`unknown_key = 1`), 0o600))

	_, err := execute(t, "resolve", "--config", path, "100")
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	st, err := openStore(ctx, config.Store{Backend: config.BackendMemory})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = openStore(ctx, config.Store{Backend: config.BackendSQLite, Path: filepath.Join(t.TempDir(), "users.sqlite")})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	_, err = openStore(ctx, config.Store{Backend: "cassandra"})
	assert.Error(t, err)
}

func TestOpenSinks(t *testing.T) {
	sinks, err := openSinks(config.Sinks{})
	require.NoError(t, err)
	assert.Empty(t, sinks)

	serv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	require.NoError(t, err)
	go serv.Start()
	if !serv.ReadyForConnections(2 * time.Second) {
		t.Fatalf("nats-io server failed to start")
	}
	t.Cleanup(serv.Shutdown)

	sinks, err = openSinks(config.Sinks{
		Kafka: config.Kafka{Brokers: []string{"127.0.0.1:9092"}},
		NATS:  config.NATS{URL: serv.ClientURL()},
	})
	require.NoError(t, err)
	require.Len(t, sinks, 2)
	assert.Equal(t, "nats", sinks[1].Name())
	for _, s := range sinks {
		assert.NoError(t, s.Close())
	}
}

func TestServe(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"
	cfg.FlushInterval = config.Duration{}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + listener.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, cfg, listener)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(baseURL + "/stats/" + stats.SourceUsersTotal)
	require.NoError(t, err)
	var report stats.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	_ = resp.Body.Close()
	assert.Equal(t, stats.TypeNumber, report.Type)
	require.Len(t, report.Series, 1)
	assert.EqualValues(t, 0, report.Series[0].Data)

	resp, err = http.Get(baseURL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Contains(t, string(body), "userdir_users_total")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
