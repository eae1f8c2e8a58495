package saunarec

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogPath string
	sheet       string
	columns     Columns
	facilities  []Facility

	stopwords    []string
	stopwordsSet bool
	topK         int

	postsDriver string // "file" or "redis"
	postsPath   string
	addrs       []string
	password    string
	postsKey    string
	location    *time.Location

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCatalogFile loads the catalog from a .csv or .xlsx file.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = path
	})
}

// WithSheet selects the XLSX sheet. Defaults to the first sheet.
func WithSheet(sheet string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sheet = sheet
	})
}

// WithColumns overrides catalog header names. Empty fields keep the default header.
func WithColumns(cols Columns) Option {
	return optionFunc(func(c *clientConfig) {
		c.columns = cols
	})
}

// WithFacilities uses an in-memory catalog instead of a file.
// Facilities with a blank attribute are dropped, as in file catalogs.
func WithFacilities(facilities []Facility) Option {
	return optionFunc(func(c *clientConfig) {
		c.facilities = facilities
	})
}

// WithStopwords replaces the default Japanese stopword list.
// Pass no words to disable stopword filtering.
func WithStopwords(words ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.stopwords = words
		c.stopwordsSet = true
	})
}

// WithTopK sets how many facilities Recommend returns. Default: 5.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithPostsFile enables the post board backed by a JSON file.
func WithPostsFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.postsDriver = "file"
		c.postsPath = path
	})
}

// WithRedis enables the post board backed by a Redis or Valkey list.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.postsDriver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithPostsKey sets the Redis list key. Default: saunarec:posts.
func WithPostsKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.postsKey = key
	})
}

// WithTimeZone sets the zone used for post dates. Default: Asia/Tokyo.
func WithTimeZone(loc *time.Location) Option {
	return optionFunc(func(c *clientConfig) {
		c.location = loc
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
