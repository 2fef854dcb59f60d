package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *Redis

// Redis couples a client with the in-process server backing it, so steps can
// move the server clock to expire keys.
type Redis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

func NewRedis() *Redis {
	redisConnOnce.Do(func() {
		redisConn = openRedisConn()
	})
	return redisConn
}

func openRedisConn() *Redis {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)

	return &Redis{Client: conn, Server: miniRedis}
}

func ClearRedis(r *Redis) error {
	return r.Client.FlushAll(context.TODO()).Err()
}
