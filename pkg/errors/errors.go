package errors

import "errors"

// ErrCacheMiss 缓存未命中（或缓存未启用）
var ErrCacheMiss = errors.New("缓存未命中")

// ErrRateLimited 请求频率超过限制
var ErrRateLimited = errors.New("请求过于频繁，请稍后再试")
