// Package redis connects to Redis with go-redis and exposes a health probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	checks := map[string]func(context.Context) error{"redis": redis.Healthcheck(client)}
//
// Config is populated from REDIS_* environment variables.
package redis
