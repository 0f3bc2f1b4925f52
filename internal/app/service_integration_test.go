package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/blindcmp/internal/adapters/repository"
	service "github.com/okian/blindcmp/internal/app"
	"github.com/okian/blindcmp/internal/domain/types"
)

func TestServiceIntegration(t *testing.T) {
	mr := miniredis.RunT(t)

	configs := map[string]repository.Config{
		"bolt":        {Backend: repository.BackendBolt, BoltPath: filepath.Join(t.TempDir(), "cmp.db")},
		"redis":       {Backend: repository.BackendRedis, RedisAddr: mr.Addr(), RedisKeyPrefix: "it:"},
		"bolt+cache":  {Backend: repository.BackendBolt, BoltPath: filepath.Join(t.TempDir(), "cached.db"), CacheSize: 32},
		"redis+cache": {Backend: repository.BackendRedis, RedisAddr: mr.Addr(), RedisKeyPrefix: "itc:", CacheSize: 32},
	}

	for name, cfg := range configs {
		Convey("Given a service over the "+name+" backend", t, func() {
			ctx := context.Background()
			store, err := repository.Open(ctx, cfg)
			So(err, ShouldBeNil)
			svc := startedService(service.WithStore(store), service.WithBackendName(cfg.Backend))
			Reset(svc.Stop)

			Convey("When running a full comparison", func() {
				id, err := svc.Create(ctx, "race", 3.5)
				So(err, ShouldBeNil)

				_, err = svc.Retrieve(ctx, id)
				So(errors.Is(err, service.ErrNotYetCompared), ShouldBeTrue)

				So(svc.Submit(ctx, id, 7.0), ShouldBeNil)
				So(errors.Is(svc.Submit(ctx, id, 1.0), service.ErrAlreadyCompared), ShouldBeTrue)

				Convey("Then the first ordering is returned every time", func() {
					for i := 0; i < 3; i++ {
						res, err := svc.Retrieve(ctx, id)
						So(err, ShouldBeNil)
						So(res, ShouldResemble, service.Result{Name: "race", Ordering: types.Less})
					}
				})
			})

			Convey("When responders race on one identifier", func() {
				id, err := svc.Create(ctx, "contended", 10)
				So(err, ShouldBeNil)

				var wins, rejected atomic.Int32
				var wg sync.WaitGroup
				for i := 0; i < 12; i++ {
					wg.Add(1)
					go func(v float64) {
						defer wg.Done()
						switch err := svc.Submit(ctx, id, v); {
						case err == nil:
							wins.Add(1)
						case errors.Is(err, service.ErrAlreadyCompared):
							rejected.Add(1)
						}
					}(float64(i * 2))
				}
				wg.Wait()

				Convey("Then exactly one submission is accepted", func() {
					So(wins.Load(), ShouldEqual, 1)
					So(rejected.Load(), ShouldEqual, 11)
				})
			})
		})
	}
}
