package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key for an admin's active session.
func (r *CacheKeyStruct) AdminSessionKey(adminID int) string {
	return fmt.Sprintf("admin:login:%d", adminID)
}

// PackageCatalogKey returns the cache key for the prewarmed package catalog.
func (r *CacheKeyStruct) PackageCatalogKey() string {
	return "packages:catalog"
}

// PackageKey returns the cache key for a single package by name.
func (r *CacheKeyStruct) PackageKey(name string) string {
	return fmt.Sprintf("packages:name:%s", name)
}

// AttendanceEventChannel returns the Redis PubSub channel carrying live
// attendance marks for the admin console feed.
func (r *CacheKeyStruct) AttendanceEventChannel() string {
	return "attendance:events"
}

// NotificationLogQueue returns the Redis list that buffers notification
// attempts until the log worker persists them.
func (r *CacheKeyStruct) NotificationLogQueue() string {
	return "notification:log_queue"
}

var CacheKey = NewCacheKeyStruct()
