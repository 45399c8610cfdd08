// Package stats submits cache and event metrics to InfluxDB.
package stats

import (
	"reflect"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/kagura-bot/kagura/cache"
	"github.com/kagura-bot/kagura/common/log"
)

// Client is an InfluxDB client.
type Client struct {
	Client api.WriteAPI

	cache *cache.Cache

	mu sync.Mutex
	m  map[string]uint32
}

// New creates a new client sampling the given cache once a minute.
func New(url, token, organization, database string, c *cache.Cache) *Client {
	cl := &Client{
		m:     make(map[string]uint32),
		cache: c,
	}

	cl.Client = influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetBatchSize(20)).WriteAPI(organization, database)

	go cl.submit()

	return cl
}

// EventHandler counts an Arikawa gateway event by its type name.
func (c *Client) EventHandler(ev interface{}) {
	c.RegisterEvent(reflect.ValueOf(ev).Elem().Type().Name())
}

// RegisterEvent counts a named event. Separate from EventHandler so callers
// can count their own synthetic events too.
func (c *Client) RegisterEvent(name string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.m[name]++
	c.mu.Unlock()
}

func (c *Client) submit() {
	if c == nil {
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		go c.submitInner()
	}
}

func (c *Client) submitInner() {
	if c == nil {
		return
	}

	var totalEvents uint32

	c.mu.Lock()
	im := make(map[string]interface{}, len(c.m))
	for k, v := range c.m {
		totalEvents += v
		im[k] = v
		c.m[k] = 0
	}
	c.mu.Unlock()

	p := influxdb2.NewPoint("events", nil, im, time.Now())
	c.Client.WritePoint(p)

	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	data := map[string]interface{}{
		"events":      totalEvents,
		"alloc":       stats.Alloc,
		"sys":         stats.Sys,
		"total_alloc": stats.TotalAlloc,
		"goroutines":  runtime.NumGoroutine(),
	}

	if c.cache != nil {
		counts := c.cache.Counts()
		data["guilds"] = counts.Guilds
		data["channels"] = counts.Channels
		data["roles"] = counts.Roles
		data["members"] = counts.Members
		data["users"] = counts.Users
		data["emojis"] = counts.Emojis
		data["messages"] = counts.Messages
		data["voice_states"] = counts.VoiceStates

		log.Debugf("submitting metrics, %v guilds cached, %v heap in use",
			counts.Guilds, humanize.Bytes(stats.Alloc))
	}

	p = influxdb2.NewPoint("statistics", nil, data, time.Now())
	c.Client.WritePoint(p)
}
