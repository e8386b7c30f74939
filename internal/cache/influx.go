package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/LeonardoBeccarini/symbiont/internal/model"
)

// DefaultMeasurement is the measurement name of mirrored snapshots.
const DefaultMeasurement = "farm_state"

type InfluxConfig struct {
	URL         string
	Token       string
	Org         string
	Bucket      string
	Measurement string
	BatchSize   uint
	FlushMs     uint
}

// Enabled reports whether every connection field is set.
func (c InfluxConfig) Enabled() bool {
	return c.URL != "" && c.Token != "" && c.Org != "" && c.Bucket != ""
}

// Influx mirrors snapshots as points through the non-blocking write API.
// Save only queues; write errors arrive later on the client's error channel
// and are handed to onError.
type Influx struct {
	client      influxdb2.Client
	writeAPI    api.WriteAPI
	measurement string

	mu      sync.RWMutex
	lastErr time.Time
	onError func(error)
	done    chan struct{}
}

// NewInflux returns ErrUnavailable if the config is incomplete.
func NewInflux(cfg InfluxConfig, onError func(error)) (*Influx, error) {
	if !cfg.Enabled() {
		return nil, ErrUnavailable
	}
	opts := influxdb2.DefaultOptions()
	if cfg.BatchSize > 0 {
		opts = opts.SetBatchSize(cfg.BatchSize)
	}
	if cfg.FlushMs > 0 {
		opts = opts.SetFlushInterval(cfg.FlushMs)
	}
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, opts)
	return newInflux(client, client.WriteAPI(cfg.Org, cfg.Bucket), cfg.Measurement, onError), nil
}

func newInflux(client influxdb2.Client, w api.WriteAPI, measurement string, onError func(error)) *Influx {
	if measurement == "" {
		measurement = DefaultMeasurement
	}
	in := &Influx{
		client:      client,
		writeAPI:    w,
		measurement: measurement,
		lastErr:     time.Now().Add(-24 * time.Hour),
		onError:     onError,
		done:        make(chan struct{}),
	}
	go in.watchErrors(w.Errors())
	return in
}

func (in *Influx) watchErrors(errs <-chan error) {
	defer close(in.done)
	for err := range errs {
		if err == nil {
			continue
		}
		in.mu.Lock()
		in.lastErr = time.Now()
		in.mu.Unlock()
		if in.onError != nil {
			in.onError(err)
		}
	}
}

func (in *Influx) Name() string { return "influx" }

// Save queues the snapshot point and returns without waiting for the server.
func (in *Influx) Save(_ context.Context, snap model.FarmSnapshot) error {
	in.writeAPI.WritePoint(SnapshotToPoint(in.measurement, snap))
	return nil
}

// LastErrorAge is the time since the last asynchronous write error.
func (in *Influx) LastErrorAge() time.Duration {
	if in == nil {
		return 99999 * time.Hour
	}
	in.mu.RLock()
	t := in.lastErr
	in.mu.RUnlock()
	return time.Since(t)
}

// Close flushes pending points and releases the client.
func (in *Influx) Close() {
	in.writeAPI.Flush()
	in.client.Close()
}

// SnapshotToPoint builds the line-protocol point for a snapshot.
func SnapshotToPoint(measurement string, snap model.FarmSnapshot) *write.Point {
	tags := map[string]string{
		"id":    strconv.Itoa(snap.ID),
		"store": StoreName,
	}
	fields := map[string]interface{}{
		"yield":       snap.State.Yield,
		"risk":        snap.State.Risk,
		"water":       snap.State.Water,
		"suggestions": int64(len(snap.State.Suggestions)),
	}
	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return influxdb2.NewPoint(measurement, tags, fields, ts)
}
