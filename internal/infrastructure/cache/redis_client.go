package cache

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions describes how to reach Redis. An empty Addr disables Redis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// ConnectRedis creates a client and pings it. It returns nil when Redis is not
// configured or unreachable; callers run without a reconciliation lock then.
func ConnectRedis(ctx context.Context, opts RedisOptions) *redis.Client {
	if opts.Addr == "" {
		log.Printf("[cache][redis] REDIS_ADDR not set, reconciliation lock disabled")
		return nil
	}

	var tlsConf *tls.Config
	if opts.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      opts.Addr,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: tlsConf,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[cache][redis] ping failed addr=%s err=%v", opts.Addr, err)
		_ = client.Close()
		return nil
	}
	log.Printf("[cache][redis] connected addr=%s db=%d", opts.Addr, opts.DB)
	return client
}
