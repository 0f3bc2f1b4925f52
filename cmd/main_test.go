package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/blindcmp/internal/client"
	"github.com/okian/blindcmp/internal/config"
	"github.com/okian/blindcmp/internal/domain/types"
	"github.com/okian/blindcmp/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the assembled handler over a bolt store", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.StoreBackend = config.BackendBolt
		cfg.BoltPath = filepath.Join(t.TempDir(), "cmp.db")

		svc, err := newService(ctx, cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newHandler(ctx, cfg, svc, logger.Get()))
		defer srv.Close()

		convey.Convey("Then docs, health and stats are served", func() {
			for _, path := range []string{"/api-docs", "/openapi.yaml", "/healthz", "/stats"} {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then a full comparison works through the client", func() {
			c := client.New(srv.URL)
			id, err := c.Create(ctx, "tie", 2)
			convey.So(err, convey.ShouldBeNil)
			convey.So(c.Submit(ctx, id, 2), convey.ShouldBeNil)
			res, err := c.Result(ctx, id)
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Ordering, convey.ShouldEqual, types.Equal)

			updateServiceMetrics(svc)
			convey.So(svc.GetStats()["backend"], convey.ShouldEqual, config.BackendBolt)
		})

		convey.Convey("Then CORS headers are set", func() {
			req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/result", strings.NewReader(`{"id":"x"}`))
			req.Header.Set("Origin", "https://example.org")
			resp, err := http.DefaultClient.Do(req)
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.Header.Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "*")
		})
	})
}

func TestNewServiceErrors(t *testing.T) {
	convey.Convey("Given a backend that cannot be opened", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.StoreBackend = config.BackendRedis
		cfg.RedisAddr = "127.0.0.1:1"

		_, err := newService(ctx, cfg, logger.Get())
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "open redis store")
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given run on a free port", t, func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		addr := ln.Addr().String()
		convey.So(ln.Close(), convey.ShouldBeNil)

		cfg := config.New(context.Background())
		cfg.Addr = addr
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- run(ctx, cfg, logger.Get()) }()

		convey.Convey("Then it serves until cancelled", func() {
			var resp *http.Response
			for i := 0; i < 50; i++ {
				resp, err = http.Get("http://" + addr + "/stats")
				if err == nil {
					break
				}
				time.Sleep(20 * time.Millisecond)
			}
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

			cancel()
			convey.So(<-done, convey.ShouldBeNil)
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the metrics updaters", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})
}

func TestConfigFromEnv(t *testing.T) {
	convey.Convey("Given an invalid backend in the environment", t, func() {
		_ = os.Setenv("CMP_STORE_BACKEND", "etcd")
		defer func() { _ = os.Unsetenv("CMP_STORE_BACKEND") }()

		_, err := config.Load(context.Background())
		convey.So(err, convey.ShouldNotBeNil)
	})
}
